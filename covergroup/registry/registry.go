// Package registry keeps the association between covergroup types and their
// instances outside the model objects, and serializes sampling of
// covergroups that share a type.
package registry

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/example/covergroup-lite/covergroup/domain"
	"github.com/example/covergroup-lite/covergroup/model"
	"github.com/example/covergroup-lite/internal/observability"
	"github.com/example/covergroup-lite/pkg/id"
	"github.com/go-logr/logr"
)

// Registry maps type IDs to type covergroups and instance IDs to instances.
// All methods are safe for concurrent use; Sample calls are serialized.
type Registry struct {
	mu      sync.Mutex
	log     logr.Logger
	metrics *observability.Metrics
	typeID  func() string
	instID  func() string

	types     map[string]*model.Covergroup
	insts     map[string]*model.Covergroup
	instType  map[string]string
	typeInsts map[string][]string
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the registry logger.
func WithLogger(l logr.Logger) Option {
	return func(r *Registry) { r.log = l }
}

// WithMetrics sets the metrics sink. A fresh one is created by default.
func WithMetrics(m *observability.Metrics) Option {
	return func(r *Registry) { r.metrics = m }
}

// WithIDGenerator sets the ID generator for both types and instances.
func WithIDGenerator(gen func() string) Option {
	return func(r *Registry) {
		r.typeID = gen
		r.instID = gen
	}
}

// New creates an empty registry.
func New(opts ...Option) *Registry {
	r := &Registry{
		log:       logr.Discard(),
		metrics:   observability.NewMetrics(),
		typeID:    id.Prefixed("cgtype"),
		instID:    id.Prefixed("cginst"),
		types:     make(map[string]*model.Covergroup),
		insts:     make(map[string]*model.Covergroup),
		instType:  make(map[string]string),
		typeInsts: make(map[string][]string),
	}
	for _, o := range opts {
		if o != nil {
			o(r)
		}
	}
	return r
}

// Metrics returns the registry's metrics.
func (r *Registry) Metrics() *observability.Metrics {
	return r.metrics
}

// RegisterType finalizes cg and registers it as a covergroup type.
func (r *Registry) RegisterType(cg *model.Covergroup) (string, error) {
	if cg == nil {
		return "", fmt.Errorf("%w: nil covergroup", domain.ErrNotFound)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, t := range r.types {
		if t == cg {
			return "", fmt.Errorf("%w: covergroup %q already registered", domain.ErrAlreadyBound, cg.Name())
		}
	}
	if err := cg.Finalize(); err != nil {
		r.log.Error(err, "finalize type failed", "covergroup", cg.Name())
		return "", err
	}
	if cg.Typename() == "" {
		cg.SetTypename(cg.Name())
	}

	tid := r.typeID()
	if err := r.checkFreeID(tid); err != nil {
		r.log.Error(err, "type ID collision", "covergroup", cg.Name())
		return "", err
	}
	r.types[tid] = cg
	r.metrics.TypeCoverage().Set(tid, cg.Coverage())
	r.log.V(1).Info("registered covergroup type", "typeID", tid, "covergroup", cg.Name())
	return tid, nil
}

// Instantiate creates and finalizes a new instance of the given type. The
// instance's coverpoints mirror the type's; callers bind sampling targets
// before the first Sample.
func (r *Registry) Instantiate(typeID, instName, duName string) (string, *model.Covergroup, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.types[typeID]
	if !ok {
		return "", nil, fmt.Errorf("%w: type %s", domain.ErrNotFound, typeID)
	}

	iid := r.instID()
	if err := r.checkFreeID(iid); err != nil {
		r.log.Error(err, "instance ID collision", "typeID", typeID, "instname", instName)
		return "", nil, err
	}

	inst, err := model.Derive(t, instName)
	if err != nil {
		return "", nil, err
	}
	inst.SetDUName(duName)
	if err := inst.Finalize(); err != nil {
		r.log.Error(err, "finalize instance failed", "typeID", typeID, "instname", instName)
		return "", nil, err
	}
	if err := model.Bind(t, inst); err != nil {
		return "", nil, err
	}

	r.insts[iid] = inst
	r.instType[iid] = typeID
	r.typeInsts[typeID] = append(r.typeInsts[typeID], iid)
	r.metrics.Instances().Inc()
	r.log.V(1).Info("instantiated covergroup", "typeID", typeID, "instanceID", iid, "instname", instName)
	return iid, inst, nil
}

func (r *Registry) checkFreeID(id string) error {
	if _, ok := r.types[id]; ok {
		return fmt.Errorf("%w: id %s already in use", domain.ErrAlreadyBound, id)
	}
	if _, ok := r.insts[id]; ok {
		return fmt.Errorf("%w: id %s already in use", domain.ErrAlreadyBound, id)
	}
	return nil
}

// Sample samples an instance, which also samples its type.
func (r *Registry) Sample(instID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	inst, ok := r.insts[instID]
	if !ok {
		return fmt.Errorf("%w: instance %s", domain.ErrNotFound, instID)
	}
	tid := r.instType[instID]

	start := time.Now()
	err := inst.Sample()
	r.metrics.SampleDuration().WithLabels(tid).Observe(time.Since(start))
	r.metrics.SamplesTotal().WithLabels(tid).Inc()
	if err != nil {
		r.metrics.SampleErrors().WithLabels(tid).Inc()
		r.log.Error(err, "sample failed", "typeID", tid, "instanceID", instID)
		return err
	}
	r.metrics.TypeCoverage().Set(tid, r.types[tid].Coverage())
	return nil
}

// Lookup returns the type or instance with the given ID.
func (r *Registry) Lookup(cgID string) (*model.Covergroup, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if t, ok := r.types[cgID]; ok {
		return t, nil
	}
	if inst, ok := r.insts[cgID]; ok {
		return inst, nil
	}
	return nil, fmt.Errorf("%w: covergroup %s", domain.ErrNotFound, cgID)
}

// TypeOf returns the type ID and type covergroup of an instance.
func (r *Registry) TypeOf(instID string) (string, *model.Covergroup, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	tid, ok := r.instType[instID]
	if !ok {
		return "", nil, fmt.Errorf("%w: instance %s", domain.ErrNotFound, instID)
	}
	return tid, r.types[tid], nil
}

// Instances returns the instance IDs of a type in creation order.
func (r *Registry) Instances(typeID string) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.types[typeID]; !ok {
		return nil, fmt.Errorf("%w: type %s", domain.ErrNotFound, typeID)
	}
	ids := r.typeInsts[typeID]
	out := make([]string, len(ids))
	copy(out, ids)
	return out, nil
}

// Types returns all registered type IDs in sorted order.
func (r *Registry) Types() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]string, 0, len(r.types))
	for tid := range r.types {
		out = append(out, tid)
	}
	sort.Strings(out)
	return out
}

// Coverage returns the aggregate coverage of a type across all its instances.
func (r *Registry) Coverage(typeID string) (float64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.types[typeID]
	if !ok {
		return 0, fmt.Errorf("%w: type %s", domain.ErrNotFound, typeID)
	}
	return t.Coverage(), nil
}
