package workflow

import (
	"context"
	"slices"

	"github.com/mihret/tmscli/internal/tms"
)

// Panel is the detail/action view over one selected record. It borrows the
// record from the pager's collection and never outlives it; Close drops the
// reference. Submission is serialized through the dispatcher's in-flight
// guard, so a double-click style second submit is rejected locally.
type Panel[T Record] struct {
	desc     Descriptor
	role     tms.Role
	disp     *Dispatcher[T]
	selected *T
}

// NewPanel creates a panel for one workflow screen and the viewer's role.
func NewPanel[T Record](disp *Dispatcher[T], role tms.Role) *Panel[T] {
	return &Panel[T]{desc: disp.Descriptor(), role: role, disp: disp}
}

// Select opens the panel on a record.
func (p *Panel[T]) Select(record T) {
	p.selected = &record
}

// Close clears the selection.
func (p *Panel[T]) Close() {
	p.selected = nil
}

// Selected returns the open record, if any.
func (p *Panel[T]) Selected() (T, bool) {
	if p.selected == nil {
		var zero T
		return zero, false
	}
	return *p.selected, true
}

// Busy reports whether a submit is outstanding; the UI disables inputs then.
func (p *Panel[T]) Busy() bool {
	return p.disp.Busy()
}

// AvailableActions returns the intents this viewer may submit for the
// selected record in its current status.
func (p *Panel[T]) AvailableActions() []IntentKind {
	if p.selected == nil {
		return nil
	}
	return p.desc.ActionsFor(p.role, (*p.selected).RecordStatus())
}

// Submit dispatches an intent for the selected record. The panel refuses
// intents outside the viewer's available set before any network activity,
// and adopts the updated record on success.
func (p *Panel[T]) Submit(ctx context.Context, pager *Pager[T], intent Intent) (T, error) {
	var zero T
	if p.selected == nil {
		return zero, &ValidationError{Message: "No request selected."}
	}
	if !slices.Contains(p.AvailableActions(), intent.Kind) {
		return zero, &ValidationError{Message: "This action is not available for the selected request."}
	}

	updated, err := p.disp.Dispatch(ctx, pager, *p.selected, intent)
	if err != nil {
		return zero, err
	}
	p.selected = &updated
	return updated, nil
}
