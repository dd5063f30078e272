package traverse

import (
	"golang.org/x/xerrors"

	"github.com/irtree/walk/ir"
)

// The five programming-error kinds (spec §7). The drivers return
// ErrLoopDetected through the default LoopRevisit hooks and
// AssertUnchanged returns ErrConstReplacement; nothing in this package
// returns the other three. There is no recovery path inside the
// driver. Callers compare with errors.Is.
var (
	ErrLoopDetected     = xerrors.New("traverse: loop detected in IR")
	ErrConstReplacement = xerrors.New("traverse: replacement through a const slot")
	ErrJoinMisuse       = xerrors.New("traverse: control-flow join misuse")
	ErrGlobalInUse      = xerrors.New("traverse: named global already in use")
	ErrHookContract     = xerrors.New("traverse: hook contract violated")
)

// wrapAt decorates err with the pass name and the kind of node n, using
// golang.org/x/xerrors so the wrapped error carries a frame and remains
// comparable with errors.Is. The Apply* functions pass the root they
// were applied to as n, not the node being visited when err was raised.
func wrapAt(err error, passName string, n ir.Node) error {
	if err == nil {
		return nil
	}
	kind := ir.KindInvalid
	if n != nil {
		kind = n.Kind()
	}
	return xerrors.Errorf("pass %q at %v: %w", passName, kind, err)
}
