package route

import (
	"errors"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	rerrors "github.com/yshengliao/linkroute/errors"
)

func mustParse(t *testing.T, raw string) *url.URL {
	t.Helper()
	u, err := url.Parse(raw)
	require.NoError(t, err)
	return u
}

func TestNewURLData_PathParamsShadowQuery(t *testing.T) {
	u := mustParse(t, "app://item/5?id=9&ref=mail&ref=push")
	d := NewURLData(u, map[string]string{"id": "5"}, nil)

	id, ok := d.Param("id")
	assert.True(t, ok)
	assert.Equal(t, "5", id)

	ref, ok := d.Param("ref")
	assert.True(t, ok)
	assert.Equal(t, "mail", ref)

	assert.Equal(t, []string{"id", "ref"}, d.ParamNames())
}

func TestURLData_Immutable(t *testing.T) {
	path := map[string]string{"userId": "42"}
	d := NewURLData(mustParse(t, "myapp://profile/42"), path, map[string]any{"badge": 1})

	path["userId"] = "changed"
	params := d.Params()
	params["userId"] = "also changed"
	d.URL().Host = "other"

	v, _ := d.Param("userId")
	assert.Equal(t, "42", v)
	assert.Equal(t, "myapp://profile/42", d.String())
	assert.Equal(t, map[string]any{"badge": 1}, d.Payload())
}

func TestURLData_NilSafe(t *testing.T) {
	var d *URLData
	_, ok := d.Param("x")
	assert.False(t, ok)
	assert.Empty(t, d.Params())
	assert.Nil(t, d.URL())
	assert.Nil(t, d.Payload())
	assert.Equal(t, "", d.String())
}

type presented struct {
	unit   Unit
	origin Origin
	data   *URLData
}

func recordingPresentation(out *[]presented) Presentation {
	return func(unit Unit, origin Origin, data *URLData) {
		*out = append(*out, presented{unit, origin, data})
	}
}

func TestAction_PresentVariants(t *testing.T) {
	data := NewURLData(mustParse(t, "myapp://profile/42"), map[string]string{"userId": "42"}, nil)

	t.Run("unit", func(t *testing.T) {
		var got []presented
		a := NewUnitAction("profile-screen", WithPresentation(recordingPresentation(&got)), WithURLData(data))
		require.NoError(t, a.Present("root"))
		require.Len(t, got, 1)
		assert.Equal(t, "profile-screen", got[0].unit)
		assert.Equal(t, "root", got[0].origin)
		assert.Same(t, data, got[0].data)
		assert.Equal(t, "unit", a.Kind())
	})

	t.Run("factory builds lazily", func(t *testing.T) {
		var got []presented
		built := 0
		a := NewFactoryAction(FactoryFunc(func(d *URLData) Unit {
			built++
			id, _ := d.Param("userId")
			return "profile:" + id
		}), WithURLData(data))
		assert.Equal(t, 0, built)

		require.NoError(t, a.PresentWith("root", recordingPresentation(&got)))
		assert.Equal(t, 1, built)
		require.Len(t, got, 1)
		assert.Equal(t, "profile:42", got[0].unit)
		assert.Equal(t, "factory", a.Kind())
	})

	t.Run("func receives presentation", func(t *testing.T) {
		var got []presented
		var seen *Action
		a := NewFuncAction(func(origin Origin, action *Action, p Presentation) {
			seen = action
			p("side-effect", origin, action.URLData())
		}, WithPresentation(recordingPresentation(&got)))

		require.NoError(t, a.Present("root"))
		assert.Same(t, a, seen)
		require.Len(t, got, 1)
		assert.Equal(t, "side-effect", got[0].unit)
		assert.Equal(t, "func", a.Kind())
	})
}

func TestAction_PresentWithoutPresentation(t *testing.T) {
	a := NewUnitAction("screen")
	err := a.Present("root")
	assert.True(t, errors.Is(err, rerrors.ErrMissingPresentation))
}

func TestAction_Setters(t *testing.T) {
	a := NewUnitAction("screen")
	assert.Nil(t, a.URLData())
	assert.Nil(t, a.Presentation())

	data := NewURLData(nil, nil, nil)
	a.SetURLData(data)
	a.SetPresentation(func(Unit, Origin, *URLData) {})
	assert.Same(t, data, a.URLData())
	assert.NotNil(t, a.Presentation())
	assert.IsType(t, UnitContent{}, a.Content())
}

func TestGeneratorName(t *testing.T) {
	g := GeneratorFunc(func(*URLData) *Action { return nil })
	assert.Equal(t, "route.GeneratorFunc", GeneratorName(g))
	assert.Equal(t, "profile", GeneratorName(Named("profile", g)))
	assert.Equal(t, "", GeneratorName(nil))
	assert.Nil(t, Named("profile", g).Generate(nil))
}
