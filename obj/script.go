package obj

import (
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/platformer/prefabs"
)

const scriptDispatch = `
update(__engine, __state)
`

// ScriptCache compiles each enemy script once and hands out clones so
// every enemy runs with its own globals.
type ScriptCache struct {
	mu       sync.Mutex
	compiled map[string]*tengo.Compiled
}

func NewScriptCache() *ScriptCache {
	return &ScriptCache{compiled: map[string]*tengo.Compiled{}}
}

// Get returns a fresh copy of the compiled script.
func (c *ScriptCache) Get(name string) (*tengo.Compiled, error) {
	if c == nil {
		return nil, fmt.Errorf("obj: nil script cache")
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if compiled, ok := c.compiled[name]; ok {
		return compiled.Clone(), nil
	}

	src, err := prefabs.LoadScript(name)
	if err != nil {
		return nil, err
	}
	script := tengo.NewScript([]byte(string(src) + "\n" + scriptDispatch))
	_ = script.Add("__engine", map[string]any{})
	_ = script.Add("__state", map[string]any{})
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("obj: compile script %s: %w", name, err)
	}
	c.compiled[name] = compiled
	return compiled.Clone(), nil
}

// Invalidate drops every compiled script so the next Get re-reads it.
func (c *ScriptCache) Invalidate() {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.compiled = map[string]*tengo.Compiled{}
	c.mu.Unlock()
}

// ScriptBehavior runs a tengo script's update(engine, state) each tick. The
// script steers through engine functions; state persists between ticks. When
// the script fails the enemy falls back to Fallback for the rest of its life.
type ScriptBehavior struct {
	Name     string
	Fallback EnemyBehavior

	compiled *tengo.Compiled
	state    *tengo.Map
	engine   *tengo.ImmutableMap
	failed   bool

	enemy *Enemy
	tick  *Tick
}

// NewScriptBehavior loads name from the cache. The error is non-nil when the
// script could not be compiled; the returned behavior then uses fallback.
func NewScriptBehavior(cache *ScriptCache, name string, fallback EnemyBehavior) (*ScriptBehavior, error) {
	b := &ScriptBehavior{
		Name:     name,
		Fallback: fallback,
		state:    &tengo.Map{Value: map[string]tengo.Object{}},
	}
	b.engine = b.buildEngine()
	compiled, err := cache.Get(name)
	if err != nil {
		b.failed = true
		return b, err
	}
	b.compiled = compiled
	return b, nil
}

// Failed reports whether the script has been abandoned.
func (b *ScriptBehavior) Failed() bool {
	return b.failed
}

func (b *ScriptBehavior) Think(e *Enemy, t *Tick) cp.Vector {
	if b.failed || b.compiled == nil {
		return b.fallback(e, t)
	}
	b.enemy, b.tick = e, t
	defer func() { b.enemy, b.tick = nil, nil }()

	if err := b.run(); err != nil {
		log.Printf("obj: enemy %s script %s error: %v", e.Name, b.Name, err)
		b.failed = true
		return b.fallback(e, t)
	}
	return cp.Vector{}
}

func (b *ScriptBehavior) fallback(e *Enemy, t *Tick) cp.Vector {
	if b.Fallback == nil {
		return cp.Vector{}
	}
	return b.Fallback.Think(e, t)
}

func (b *ScriptBehavior) run() error {
	if err := b.compiled.Set("__engine", b.engine); err != nil {
		return err
	}
	if err := b.compiled.Set("__state", b.state); err != nil {
		return err
	}
	return b.compiled.Run()
}

func (b *ScriptBehavior) buildEngine() *tengo.ImmutableMap {
	values := map[string]tengo.Object{}

	values["get_position"] = &tengo.UserFunction{Name: "get_position", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if b.enemy == nil {
			return vecObject(cp.Vector{}), nil
		}
		return vecObject(b.enemy.Center()), nil
	}}

	values["get_player_position"] = &tengo.UserFunction{Name: "get_player_position", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if b.tick == nil || b.tick.Player == nil {
			return vecObject(cp.Vector{}), nil
		}
		return vecObject(b.tick.Player.Center()), nil
	}}

	values["set_velocity"] = &tengo.UserFunction{Name: "set_velocity", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if b.enemy == nil || len(args) < 2 {
			return tengo.FalseValue, nil
		}
		x, okX := tengo.ToFloat64(args[0])
		y, okY := tengo.ToFloat64(args[1])
		if !okX || !okY {
			return nil, tengo.ErrInvalidArgumentType{Name: "velocity", Expected: "float", Found: args[0].TypeName()}
		}
		b.enemy.Vel = cp.Vector{X: x, Y: y}
		return tengo.TrueValue, nil
	}}

	values["set_flip"] = &tengo.UserFunction{Name: "set_flip", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if b.enemy == nil || len(args) < 1 {
			return tengo.FalseValue, nil
		}
		b.enemy.Flip = !args[0].IsFalsy()
		return tengo.TrueValue, nil
	}}

	values["set_action"] = &tengo.UserFunction{Name: "set_action", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if b.enemy == nil || len(args) < 1 {
			return tengo.FalseValue, nil
		}
		name := strings.TrimSpace(objectAsString(args[0]))
		if name == "" {
			return tengo.FalseValue, nil
		}
		b.enemy.SetAction(name)
		return tengo.TrueValue, nil
	}}

	values["speed"] = &tengo.UserFunction{Name: "speed", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if b.enemy == nil {
			return &tengo.Float{Value: 0}, nil
		}
		return &tengo.Float{Value: b.enemy.Spec.Speed}, nil
	}}

	values["sight"] = &tengo.UserFunction{Name: "sight", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if b.enemy == nil {
			return &tengo.Float{Value: 0}, nil
		}
		return &tengo.Float{Value: b.enemy.Spec.SightX}, nil
	}}

	return &tengo.ImmutableMap{Value: values}
}

func vecObject(v cp.Vector) tengo.Object {
	return &tengo.Array{Value: []tengo.Object{&tengo.Float{Value: v.X}, &tengo.Float{Value: v.Y}}}
}

func objectAsString(obj tengo.Object) string {
	if obj == nil {
		return ""
	}
	switch v := obj.(type) {
	case *tengo.String:
		return v.Value
	default:
		return strings.Trim(v.String(), "\"")
	}
}

// BehaviorFor builds the behavior for one enemy, preferring its tuning's
// script when there is one.
func BehaviorFor(spec prefabs.EnemySpec, scripts *ScriptCache) EnemyBehavior {
	fallback := DefaultBehavior(spec)
	if spec.Script == "" || scripts == nil {
		return fallback
	}
	b, err := NewScriptBehavior(scripts, spec.Script, fallback)
	if err != nil {
		log.Printf("obj: script %s unavailable, using built-in behavior: %v", spec.Script, err)
	}
	return b
}
