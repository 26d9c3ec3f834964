// Package scripting runs tengo controller scripts. A script defines
//
//	update := func(body, input, delta) { ... }
//
// and is called once per tick before the body moves. body exposes the
// motion state of the last frame and lets the script set the velocity.
package scripting

import (
	"errors"
	"fmt"
	"os"

	"github.com/automoto/slide2d/motion"
	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/go-gl/mathgl/mgl64"
)

const dispatchScript = `
update(__body, __input, __delta)
`

var ErrNoBody = errors.New("scripting: update without a body")

// Input is the player intent passed to scripts.
type Input struct {
	Left, Right bool
	Jump        bool
	// JumpPressed is true on the tick the jump button went down.
	JumpPressed bool
}

// Controller is one compiled script. It is not safe for concurrent use;
// use Clone for each body.
type Controller struct {
	Name     string
	compiled *tengo.Compiled
}

// Load compiles the script at path.
func Load(path string) (*Controller, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("scripting: load %s: %w", path, err)
	}
	return New(path, src)
}

// New compiles src. name is only used in errors.
func New(name string, src []byte) (*Controller, error) {
	script := tengo.NewScript(append(append([]byte(nil), src...), dispatchScript...))
	_ = script.Add("__body", map[string]any{})
	_ = script.Add("__input", map[string]any{})
	_ = script.Add("__delta", 0.0)
	script.SetImports(stdlib.GetModuleMap("math", "fmt"))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("scripting: compile %s: %w", name, err)
	}
	return &Controller{Name: name, compiled: compiled}, nil
}

// Clone returns a controller with its own globals.
func (c *Controller) Clone() *Controller {
	return &Controller{Name: c.Name, compiled: c.compiled.Clone()}
}

// Update runs the script's update function for body.
func (c *Controller) Update(body *motion.Character, in Input, delta float64) error {
	if body == nil {
		return ErrNoBody
	}
	if err := c.compiled.Set("__body", bodyObject(body)); err != nil {
		return err
	}
	if err := c.compiled.Set("__input", inputObject(in)); err != nil {
		return err
	}
	if err := c.compiled.Set("__delta", delta); err != nil {
		return err
	}
	if err := c.compiled.Run(); err != nil {
		return fmt.Errorf("scripting: %s: %w", c.Name, err)
	}
	return nil
}

func inputObject(in Input) *tengo.ImmutableMap {
	return &tengo.ImmutableMap{Value: map[string]tengo.Object{
		"left":         boolObject(in.Left),
		"right":        boolObject(in.Right),
		"jump":         boolObject(in.Jump),
		"jump_pressed": boolObject(in.JumpPressed),
	}}
}

func bodyObject(body *motion.Character) *tengo.ImmutableMap {
	values := map[string]tengo.Object{}

	values["velocity"] = getter("velocity", func() tengo.Object {
		return vecObject(body.LinearVelocity())
	})
	values["set_velocity"] = &tengo.UserFunction{Name: "set_velocity", Value: func(args ...tengo.Object) (tengo.Object, error) {
		v, err := vecArgs("set_velocity", args)
		if err != nil {
			return nil, err
		}
		body.SetLinearVelocity(v)
		return tengo.UndefinedValue, nil
	}}
	values["set_snap"] = &tengo.UserFunction{Name: "set_snap", Value: func(args ...tengo.Object) (tengo.Object, error) {
		v, err := vecArgs("set_snap", args)
		if err != nil {
			return nil, err
		}
		body.SetSnap(v)
		return tengo.UndefinedValue, nil
	}}
	values["on_floor"] = getter("on_floor", func() tengo.Object { return boolObject(body.IsOnFloor()) })
	values["on_wall"] = getter("on_wall", func() tengo.Object { return boolObject(body.IsOnWall()) })
	values["on_ceiling"] = getter("on_ceiling", func() tengo.Object { return boolObject(body.IsOnCeiling()) })
	values["floor_normal"] = getter("floor_normal", func() tengo.Object { return vecObject(body.FloorNormal()) })
	values["floor_velocity"] = getter("floor_velocity", func() tengo.Object { return vecObject(body.FloorVelocity()) })
	values["position"] = getter("position", func() tengo.Object { return vecObject(body.Transform.Origin) })
	values["slide_count"] = getter("slide_count", func() tengo.Object {
		return &tengo.Int{Value: int64(body.SlideCount())}
	})
	values["slide_collision"] = &tengo.UserFunction{Name: "slide_collision", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) != 1 {
			return nil, tengo.ErrWrongNumArguments
		}
		i, ok := tengo.ToInt(args[0])
		if !ok {
			return nil, tengo.ErrInvalidArgumentType{Name: "index", Expected: "int", Found: args[0].TypeName()}
		}
		res, err := body.SlideCollision(i)
		if err != nil {
			return tengo.UndefinedValue, nil
		}
		return resultObject(res), nil
	}}

	return &tengo.ImmutableMap{Value: values}
}

func resultObject(r motion.Result) *tengo.ImmutableMap {
	return &tengo.ImmutableMap{Value: map[string]tengo.Object{
		"position":          vecObject(r.Position()),
		"normal":            vecObject(r.Normal),
		"travel":            vecObject(r.Travel()),
		"remainder":         vecObject(r.Remainder),
		"collider":          &tengo.Int{Value: int64(r.Collider)},
		"collider_velocity": vecObject(r.ColliderVelocity),
	}}
}

func getter(name string, fn func() tengo.Object) *tengo.UserFunction {
	return &tengo.UserFunction{Name: name, Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) != 0 {
			return nil, tengo.ErrWrongNumArguments
		}
		return fn(), nil
	}}
}

func vecArgs(name string, args []tengo.Object) (mgl64.Vec2, error) {
	if len(args) != 2 {
		return mgl64.Vec2{}, tengo.ErrWrongNumArguments
	}
	var v mgl64.Vec2
	for i, arg := range args {
		f, ok := tengo.ToFloat64(arg)
		if !ok {
			return mgl64.Vec2{}, tengo.ErrInvalidArgumentType{
				Name:     fmt.Sprintf("%s arg %d", name, i),
				Expected: "float",
				Found:    arg.TypeName(),
			}
		}
		v[i] = f
	}
	return v, nil
}

func vecObject(v mgl64.Vec2) *tengo.ImmutableArray {
	return &tengo.ImmutableArray{Value: []tengo.Object{&tengo.Float{Value: v[0]}, &tengo.Float{Value: v[1]}}}
}

func boolObject(b bool) tengo.Object {
	if b {
		return tengo.TrueValue
	}
	return tengo.FalseValue
}
