package injector_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/km-arc/go-injector/framework/injector"
)

func TestParent_DefaultsToNil(t *testing.T) {
	inj := injector.New()
	assert.Nil(t, inj.GetParentInjector())
}

func TestCreateChildInjector_ReferencesParent(t *testing.T) {
	inj := injector.New()
	child := inj.CreateChildInjector()

	require.NotNil(t, child)
	assert.Same(t, inj, child.GetParentInjector())
	assert.NotSame(t, inj, child)
	assert.Nil(t, inj.GetParentInjector())
}

func TestSetParentInjector(t *testing.T) {
	inj := injector.New()
	parent := injector.New()

	require.NoError(t, inj.SetParentInjector(parent))
	assert.Same(t, parent, inj.GetParentInjector())

	require.NoError(t, inj.SetParentInjector(nil))
	assert.Nil(t, inj.GetParentInjector())
}

func TestSetParentInjector_TypedNil(t *testing.T) {
	inj := injector.New(injector.WithParent(injector.New()))

	var none *injector.Injector
	require.NoError(t, inj.SetParentInjector(none))
	assert.Nil(t, inj.GetParentInjector())
}

func TestSetParentInjector_RejectsNonInjector(t *testing.T) {
	tests := []struct {
		name  string
		value any
	}{
		{"empty struct", struct{}{}},
		{"map", map[string]any{}},
		{"injector value", *injector.New()},
		{"string", "injector"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inj := injector.New()
			err := inj.SetParentInjector(tt.value)
			require.ErrorIs(t, err, injector.ErrInvalidParent)
			assert.EqualError(t, err, "Cannot set the parentInjector because it is not an injector")
			assert.Nil(t, inj.GetParentInjector())
		})
	}
}

func TestSetParentInjector_FailureKeepsExistingParent(t *testing.T) {
	parent := injector.New()
	inj := parent.CreateChildInjector()

	assert.ErrorIs(t, inj.SetParentInjector(42), injector.ErrInvalidParent)
	assert.Same(t, parent, inj.GetParentInjector())
}

func TestChild_SeesParentMappings(t *testing.T) {
	inj := injector.New()
	child := inj.CreateChildInjector()

	assert.False(t, inj.HasMapping("someValue"))
	assert.False(t, child.HasMapping("someValue"))

	inj.Map("someValue").ToValue("Hello World")

	assert.True(t, inj.HasMapping("someValue"))
	assert.True(t, child.HasMapping("someValue"))
	assert.True(t, inj.HasDirectMapping("someValue"))
	assert.False(t, child.HasDirectMapping("someValue"))
	assert.Equal(t, "Hello World", child.MustGetInstance("someValue"))
}

func TestChild_HidesMappingsFromParent(t *testing.T) {
	inj := injector.New()
	child := inj.CreateChildInjector()
	child.Map("someValue").ToValue("Hello World")

	assert.True(t, child.HasMapping("someValue"))
	assert.True(t, child.HasDirectMapping("someValue"))
	assert.False(t, inj.HasMapping("someValue"))
	assert.False(t, inj.HasDirectMapping("someValue"))

	assert.Equal(t, "Hello World", child.MustGetInstance("someValue"))
	_, err := inj.GetInstance("someValue")
	assert.EqualError(t, err, `Cannot return instance "someValue" because no mapping has been found`)
}

func TestChild_MultipleChildren(t *testing.T) {
	inj := injector.New()
	child1 := inj.CreateChildInjector()
	child2 := inj.CreateChildInjector()
	grandchild := child1.CreateChildInjector()

	assert.Nil(t, inj.GetParentInjector())
	assert.Same(t, inj, child1.GetParentInjector())
	assert.Same(t, inj, child2.GetParentInjector())
	assert.Same(t, child1, grandchild.GetParentInjector())
	assert.Equal(t, []*injector.Injector{grandchild, child1, inj}, grandchild.Chain())
}

func TestChild_ResolvesSeveralLevelsUp(t *testing.T) {
	inj := injector.New()
	child := inj.CreateChildInjector()
	grandchild := child.CreateChildInjector()

	inj.Map("someValue").ToValue("Hello World")
	child.Map("otherValue").ToValue("Hello child!")

	for _, n := range []*injector.Injector{inj, child, grandchild} {
		assert.Equal(t, "Hello World", n.MustGetInstance("someValue"))
	}
	assert.Equal(t, "Hello child!", child.MustGetInstance("otherValue"))
	assert.Equal(t, "Hello child!", grandchild.MustGetInstance("otherValue"))
	assert.False(t, inj.HasMapping("otherValue"))
}

func TestChild_ShadowsParentKey(t *testing.T) {
	inj := injector.New()
	child := inj.CreateChildInjector()
	inj.Map("someValue").ToValue("Hello World")

	assert.NotPanics(t, func() { child.Map("someValue").ToValue("Hello child!") })
	assert.Equal(t, "Hello child!", child.MustGetInstance("someValue"))
	assert.Equal(t, "Hello World", inj.MustGetInstance("someValue"))
}

func TestChild_MissReportsOriginalKey(t *testing.T) {
	inj := injector.New()
	grandchild := inj.CreateChildInjector().CreateChildInjector()

	_, err := grandchild.GetInstance("db", "replica")
	assert.EqualError(t, err, `Cannot return instance "db by name replica" because no mapping has been found`)
}

// Instances built from a parent binding are wired by the parent, so a child's
// override is not seen by them.
func TestChild_ParentBindingWiredByOwner(t *testing.T) {
	inj := injector.New()
	child := inj.CreateChildInjector()
	inj.Map("greeting").ToValue("parent")
	child.Map("greeting").ToValue("child")
	inj.Map("greeter").ToType(func() any {
		return map[string]any{"greeting": "inject"}
	})

	got := child.MustGetInstance("greeter").(map[string]any)
	assert.Equal(t, "parent", got["greeting"])
}

func TestReparent_ChangesResolution(t *testing.T) {
	a := injector.New()
	b := injector.New()
	a.Map("who").ToValue("a")
	b.Map("who").ToValue("b")

	child := a.CreateChildInjector()
	assert.Equal(t, "a", child.MustGetInstance("who"))

	require.NoError(t, child.SetParentInjector(b))
	assert.Equal(t, "b", child.MustGetInstance("who"))
}

func TestLookup_FindsOwnerWithoutBuilding(t *testing.T) {
	root := injector.New()
	child := root.CreateChildInjector()
	built := false
	root.Map("db").ToSingleton(func() any { built = true; return "conn" })

	owner, info, ok := child.Lookup(injector.TypeKey("db"))
	require.True(t, ok)
	assert.Same(t, root, owner)
	assert.Equal(t, "singleton", info.Kind)
	assert.False(t, info.Built)
	assert.False(t, built)

	child.MustGetInstance("db")
	_, info, _ = child.Lookup(injector.TypeKey("db"))
	assert.True(t, info.Built)
}

func TestLookup_Miss(t *testing.T) {
	owner, _, ok := injector.New().CreateChildInjector().Lookup(injector.NamedKey("db", "x"))
	assert.False(t, ok)
	assert.Nil(t, owner)
}
