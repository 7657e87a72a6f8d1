package form

import (
	"fmt"
	"log/slog"
	"reflect"
	"sort"
	"strings"
	"sync"
)

// Event is delivered to subscribers after a change has been fully applied.
// Field is empty when the event comes from a whole-form Validate.
type Event struct {
	Field  string
	Valid  bool
	Errors map[string]Errors
}

// Option configures a Form.
type Option func(*Form)

// WithLogger routes engine diagnostics to logger. Forms are silent by default.
func WithLogger(logger *slog.Logger) Option {
	return func(f *Form) {
		if logger != nil {
			f.logger = logger
		}
	}
}

type registeredRule struct {
	rule   Rule
	claims []Claim
}

// Form is an ordered collection of fields plus form-level rules. Every change
// event is processed under a single lock, one at a time.
type Form struct {
	mu        sync.Mutex
	order     []string
	fields    map[string]*Field
	rules     []registeredRule
	owners    map[Claim]int
	listeners map[int]func(Event)
	nextID    int
	logger    *slog.Logger
}

// New constructs an empty form.
func New(opts ...Option) *Form {
	f := &Form{
		fields:    make(map[string]*Field),
		owners:    make(map[Claim]int),
		listeners: make(map[int]func(Event)),
		logger:    slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(f)
		}
	}
	return f
}

// AddField registers a field. The initial value is normalised but not
// validated; call Validate once the form is fully assembled.
func (f *Form) AddField(name string, opts ...FieldOption) (*Field, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return nil, ErrEmptyFieldName
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if _, exists := f.fields[trimmed]; exists {
		return nil, fmt.Errorf("%w: %q", ErrDuplicateField, trimmed)
	}

	field := &Field{name: trimmed}
	for _, opt := range opts {
		if opt != nil {
			opt(field)
		}
	}
	field.assign(field.value)

	f.fields[trimmed] = field
	f.order = append(f.order, trimmed)
	return field, nil
}

// AddRule attaches a form-level rule. Rules implementing Owner have their
// claims checked against every rule registered before them.
func (f *Form) AddRule(r Rule) error {
	if r == nil {
		return ErrNilRule
	}
	claims := claimsOf(r)

	f.mu.Lock()
	defer f.mu.Unlock()

	for _, claim := range claims {
		if _, taken := f.owners[claim]; taken {
			return fmt.Errorf("%w: %s on %q", ErrOwnershipConflict, claim.Error, claim.Field)
		}
	}
	idx := len(f.rules)
	for _, claim := range claims {
		f.owners[claim] = idx
	}
	f.rules = append(f.rules, registeredRule{rule: r, claims: claims})
	return nil
}

// Field returns the named field.
func (f *Form) Field(name string) (*Field, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	field, ok := f.fields[name]
	return field, ok
}

// Rules returns the registered form-level rules in registration order.
func (f *Form) Rules() []Rule {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Rule, 0, len(f.rules))
	for _, entry := range f.rules {
		out = append(out, entry.rule)
	}
	return out
}

// FieldNames returns the field names in registration order.
func (f *Form) FieldNames() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.order...)
}

// SetValue stores a new value for the named field, recomputes that field's
// own errors, runs every form rule, and notifies subscribers.
func (f *Form) SetValue(name, value string) error {
	f.mu.Lock()
	field, ok := f.fields[name]
	if !ok {
		f.mu.Unlock()
		return fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	field.assign(value)
	field.revalidate()
	f.runRules()
	event := f.eventLocked(name)
	listeners := f.listenersLocked()
	f.mu.Unlock()

	notify(listeners, event)
	return nil
}

// Validate recomputes every field's errors and runs every form rule.
func (f *Form) Validate() bool {
	f.mu.Lock()
	for _, name := range f.order {
		f.fields[name].revalidate()
	}
	f.runRules()
	event := f.eventLocked("")
	listeners := f.listenersLocked()
	f.mu.Unlock()

	notify(listeners, event)
	return event.Valid
}

// Apply evaluates r against the current state and applies its diff once. A
// rule already registered with AddRule acts with its registered claims. Any
// other rule cannot take over claims held by registered rules: changes
// touching those errors are dropped.
func (f *Form) Apply(r Rule) {
	if r == nil {
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	for idx, entry := range f.rules {
		if sameRule(entry.rule, r) {
			f.applyRule(r, idx, entry.claims)
			return
		}
	}

	var claims []Claim
	for _, claim := range claimsOf(r) {
		if owner, taken := f.owners[claim]; taken {
			f.logger.Warn("unregistered rule claims an error owned by another rule",
				"field", claim.Field,
				"error", claim.Error,
				"owner", owner,
			)
			continue
		}
		claims = append(claims, claim)
	}
	f.applyRule(r, -1, claims)
}

// Valid reports whether every field's bag is empty.
func (f *Form) Valid() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.validLocked()
}

// Values returns a snapshot of field values keyed by name.
func (f *Form) Values() map[string]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(map[string]string, len(f.order))
	for _, name := range f.order {
		out[name] = f.fields[name].value
	}
	return out
}

// Errors returns a snapshot of errors for fields that currently have any.
func (f *Form) Errors() map[string]Errors {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.errorsLocked()
}

// Subscribe registers fn to receive change events. The returned function
// removes the subscription.
func (f *Form) Subscribe(fn func(Event)) func() {
	if fn == nil {
		return func() {}
	}
	f.mu.Lock()
	id := f.nextID
	f.nextID++
	f.listeners[id] = fn
	f.mu.Unlock()

	return func() {
		f.mu.Lock()
		delete(f.listeners, id)
		f.mu.Unlock()
	}
}

func (f *Form) runRules() {
	for idx, entry := range f.rules {
		f.applyRule(entry.rule, idx, entry.claims)
	}
}

func (f *Form) applyRule(r Rule, idx int, claims []Claim) {
	diff := r.Evaluate(view{fields: f.fields})
	if len(diff) == 0 {
		return
	}
	own := make(map[Claim]struct{}, len(claims))
	for _, claim := range claims {
		own[claim] = struct{}{}
	}
	for _, change := range diff {
		f.applyChange(change, idx, own)
	}
}

func (f *Form) applyChange(change Change, idx int, own map[Claim]struct{}) {
	field, ok := f.fields[change.Field]
	if !ok {
		f.logger.Warn("form rule targeted unknown field", "field", change.Field)
		return
	}

	allowed := func(name string) bool {
		claim := Claim{Field: change.Field, Error: name}
		if _, mine := own[claim]; mine {
			return true
		}
		owner, taken := f.owners[claim]
		if !taken || owner == idx {
			return true
		}
		f.logger.Warn("form rule touched an error owned by another rule",
			"field", change.Field,
			"error", name,
			"owner", owner,
		)
		return false
	}

	if change.ClearAll {
		for _, name := range field.bag.Errors().Names() {
			claim := Claim{Field: change.Field, Error: name}
			if owner, taken := f.owners[claim]; taken && owner != idx {
				if _, mine := own[claim]; !mine {
					continue
				}
			}
			field.bag.remove(name)
		}
	}
	for _, name := range change.Clear {
		if allowed(name) {
			field.bag.remove(name)
		}
	}
	for _, name := range change.Set.Names() {
		if allowed(name) {
			field.bag.add(name, change.Set[name])
		}
	}

	f.logger.Debug("form rule applied",
		"field", change.Field,
		"set", change.Set.Names(),
		"clear", change.Clear,
		"clear_all", change.ClearAll,
		"errors", field.bag.Errors().Names(),
	)
}

func (f *Form) validLocked() bool {
	for _, name := range f.order {
		if f.fields[name].bag.HasErrors() {
			return false
		}
	}
	return true
}

func (f *Form) errorsLocked() map[string]Errors {
	out := make(map[string]Errors)
	for _, name := range f.order {
		if errs := f.fields[name].bag.Errors(); len(errs) > 0 {
			out[name] = errs
		}
	}
	return out
}

func (f *Form) eventLocked(field string) Event {
	return Event{
		Field:  field,
		Valid:  f.validLocked(),
		Errors: f.errorsLocked(),
	}
}

func (f *Form) listenersLocked() []func(Event) {
	if len(f.listeners) == 0 {
		return nil
	}
	ids := make([]int, 0, len(f.listeners))
	for id := range f.listeners {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	out := make([]func(Event), 0, len(ids))
	for _, id := range ids {
		out = append(out, f.listeners[id])
	}
	return out
}

// sameRule reports whether a and b are the same rule value. Rules of
// non-comparable types (such as RuleFunc) never match.
func sameRule(a, b Rule) bool {
	ta := reflect.TypeOf(a)
	if ta != reflect.TypeOf(b) || !ta.Comparable() {
		return false
	}
	return a == b
}

func notify(listeners []func(Event), event Event) {
	for _, fn := range listeners {
		fn(event)
	}
}
