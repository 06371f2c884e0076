package bloom

type Stage int

const (
	Default Stage = iota
	// ClearBits wraps Filter.Reset. No arguments.
	ClearBits
	// RestoreFromStream wraps Restore. After receives the restored *Filter on success.
	RestoreFromStream
	// CapacityExceeded fires once per fill cycle, when the bits set clearly
	// exceed the level expected for Capacity inserts. Before and After receive
	// the *Filter.
	CapacityExceeded
)

func (s Stage) String() string {
	names := [...]string{
		"Default",
		"ClearBits",
		"RestoreFromStream",
		"CapacityExceeded",
	}
	if s < 0 || int(s) >= len(names) {
		return "unknown"
	}
	return names[s]
}

type Hook interface {
	GetStage() Stage
	Before(args ...interface{})
	After(optionalErr error, args ...interface{})
	AfterSuccess(args ...interface{})
	AfterFail(err error, args ...interface{})
}

type HookImpl struct {
	Stage          Stage
	BeforeFn       func(args ...interface{})
	AfterSuccessFn func(args ...interface{})
	AfterFailFn    func(err error, args ...interface{})
}

func (h *HookImpl) GetStage() Stage {
	return h.Stage
}

func (h *HookImpl) Before(args ...interface{}) {
	if h.BeforeFn != nil {
		h.BeforeFn(args...)
	}
}

func (h *HookImpl) After(optionalErr error, args ...interface{}) {
	if optionalErr != nil {
		h.AfterFail(optionalErr, args...)
		return
	}
	h.AfterSuccess(args...)
}

func (h *HookImpl) AfterSuccess(args ...interface{}) {
	if h.AfterSuccessFn != nil {
		h.AfterSuccessFn(args...)
	}
}

func (h *HookImpl) AfterFail(err error, args ...interface{}) {
	if h.AfterFailFn != nil {
		h.AfterFailFn(err, args...)
	}
}

// Hooks dispatches stage callbacks. A nil *Hooks is valid and does nothing.
type Hooks struct {
	hooks map[Stage]Hook
}

// NewHooks registers hooks by their stage; a later hook for the same stage
// replaces an earlier one.
func NewHooks(hooks ...Hook) *Hooks {
	hs := &Hooks{hooks: make(map[Stage]Hook, len(hooks))}
	for _, h := range hooks {
		hs.hooks[h.GetStage()] = h
	}
	return hs
}

func (hs *Hooks) Before(stage Stage, args ...interface{}) {
	hs.getHook(stage).Before(args...)
}

func (hs *Hooks) After(stage Stage, optionalErr error, args ...interface{}) {
	hs.getHook(stage).After(optionalErr, args...)
}

func (hs *Hooks) getHook(stage Stage) Hook {
	if hs == nil {
		return noOpHookInst
	}
	if h, exists := hs.hooks[stage]; exists {
		return h
	}
	return noOpHookInst
}

var noOpHookInst = noOpHook{}

type noOpHook struct {
}

func (n noOpHook) GetStage() Stage {
	return Default
}

func (n noOpHook) Before(args ...interface{}) {}

func (n noOpHook) After(optionalErr error, args ...interface{}) {}

func (n noOpHook) AfterSuccess(args ...interface{}) {}

func (n noOpHook) AfterFail(err error, args ...interface{}) {}

var _ Hook = &HookImpl{}
var _ Hook = noOpHook{}
