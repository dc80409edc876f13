package bins

import (
	"fmt"

	"github.com/example/covergroup-lite/covergroup/domain"
	"github.com/example/covergroup-lite/covergroup/model"
)

// SetTarget binds a target to the named coverpoint of cg. It is typically
// used on instances returned by model.NewInstance.
func SetTarget(cg *model.Covergroup, coverpoint string, t Target) error {
	c, ok := cg.CoverpointByName(coverpoint)
	if !ok {
		return fmt.Errorf("%w: covergroup %q has no coverpoint %q",
			domain.ErrNotFound, cg.Name(), coverpoint)
	}
	cp, ok := c.(*Coverpoint)
	if !ok {
		return fmt.Errorf("%w: coverpoint %q is %T",
			domain.ErrUnsupportedModelKind, coverpoint, c)
	}
	cp.SetTarget(t)
	return nil
}
