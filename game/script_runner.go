package game

import (
	"fmt"
	"strings"

	"github.com/dop251/goja"
)

// ScriptRunner executes a JavaScript AI script with goja (pure Go JavaScript engine).
// The script must define a function called 'decide' that takes a context object
// and returns a decision object. A runner is not safe for concurrent use.
type ScriptRunner struct {
	vm     *goja.Runtime
	decide goja.Callable
}

// NewScriptRunner compiles the script and looks up its decide function
func NewScriptRunner(name, code string) (*ScriptRunner, error) {
	program, err := goja.Compile(name, code, true)
	if err != nil {
		return nil, fmt.Errorf("script parse error: %w", err)
	}

	vm := goja.New()
	if _, err := vm.RunProgram(program); err != nil {
		return nil, fmt.Errorf("script execution failed: %w", err)
	}

	decideValue := vm.Get("decide")
	if decideValue == nil || goja.IsUndefined(decideValue) {
		return nil, fmt.Errorf("script must define a 'decide' function")
	}
	decide, ok := goja.AssertFunction(decideValue)
	if !ok {
		return nil, fmt.Errorf("'decide' must be a function")
	}

	return &ScriptRunner{vm: vm, decide: decide}, nil
}

// Decide calls the script's decide function with the given context
func (r *ScriptRunner) Decide(ctx ScriptContext) (Decision, error) {
	result, err := r.decide(goja.Undefined(), r.vm.ToValue(ctx.toJS()))
	if err != nil {
		return Decision{}, fmt.Errorf("decide function failed: %w", err)
	}
	if result == nil || goja.IsUndefined(result) || goja.IsNull(result) {
		return Decision{}, fmt.Errorf("decide returned no decision")
	}

	fields, ok := result.Export().(map[string]interface{})
	if !ok {
		return Decision{}, fmt.Errorf("decide must return an object, got %s", result.String())
	}

	facing, err := parseFacing(fields["facing"], ctx.Facing)
	if err != nil {
		return Decision{}, err
	}
	fire, _ := fields["fire"].(bool)

	return Decision{Facing: facing, Fire: fire}, nil
}

// parseFacing accepts a direction index (0..3) or name; a missing facing keeps the current one
func parseFacing(v interface{}, current Direction) (Direction, error) {
	switch f := v.(type) {
	case nil:
		return current, nil
	case int64:
		return directionIndex(f)
	case float64:
		if f != float64(int64(f)) {
			return 0, fmt.Errorf("invalid facing %v", f)
		}
		return directionIndex(int64(f))
	case string:
		for _, d := range Directions {
			if strings.EqualFold(d.String(), f) {
				return d, nil
			}
		}
		return 0, fmt.Errorf("invalid facing %q", f)
	default:
		return 0, fmt.Errorf("invalid facing type %T", v)
	}
}

func directionIndex(i int64) (Direction, error) {
	if i < 0 || i >= int64(len(Directions)) {
		return 0, fmt.Errorf("facing %d out of range", i)
	}
	return Directions[i], nil
}
