package generator

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRenderer(t *testing.T) {
	r := NewRenderer()
	assert.NotNil(t, r)
	assert.NotNil(t, r.funcMap)
	assert.Empty(t, r.cache)
}

func TestRenderFS_Templates(t *testing.T) {

	tests := []struct {
		name        string
		templateStr string
		data        any
		expected    string
		wantErr     bool
		errContains string
	}{
		{
			name:        "plain text",
			templateStr: "Hello World",
			expected:    "Hello World",
		},
		{
			name:        "struct data",
			templateStr: "export const {{ .Name }}Routes = router;",
			data:        struct{ Name string }{Name: "order"},
			expected:    "export const orderRoutes = router;",
		},
		{
			name:        "capitalize helper",
			templateStr: "{{ capitalize .Name }}Controllers",
			data:        map[string]any{"Name": "userProfile"},
			expected:    "UserProfileControllers",
		},
		{
			name:        "syntax error",
			templateStr: "{{ .Name }",
			wantErr:     true,
			errContains: "failed to parse template",
		},
		{
			name:        "missing function",
			templateStr: "{{ nope .Name }}",
			wantErr:     true,
			errContains: "failed to parse template",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fsys := fstest.MapFS{"t.tmpl": {Data: []byte(tt.templateStr)}}
			out, err := NewRenderer().RenderFS(fsys, "t.tmpl", tt.data)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContains)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, string(out))
		})
	}
}

func TestRenderFS(t *testing.T) {
	fsys := fstest.MapFS{
		"module/route.ts.tmpl": {Data: []byte("import { {{ .Capitalized }}Controllers } from './{{ .Name }}.controller';\n")},
	}
	data := struct{ Name, Capitalized string }{"order", "Order"}

	r := NewRenderer()
	out, err := r.RenderFS(fsys, "module/route.ts.tmpl", data)
	require.NoError(t, err)
	assert.Equal(t, "import { OrderControllers } from './order.controller';\n", string(out))

	// Second render is served from the cache even if the source disappears
	delete(fsys, "module/route.ts.tmpl")
	out, err = r.RenderFS(fsys, "module/route.ts.tmpl", data)
	require.NoError(t, err)
	assert.Contains(t, string(out), "OrderControllers")

	_, err = NewRenderer().RenderFS(fsys, "module/route.ts.tmpl", data)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read template")
}

func TestRenderFS_ExecutionError(t *testing.T) {
	fsys := fstest.MapFS{
		"bad.tmpl": {Data: []byte("{{ .Missing.Field }}")},
	}

	_, err := NewRenderer().RenderFS(fsys, "bad.tmpl", struct{}{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to render template")
}

func TestCapitalize(t *testing.T) {
	tests := map[string]string{
		"":            "",
		"order":       "Order",
		"Order":       "Order",
		"userProfile": "UserProfile",
		"o":           "O",
		"éclair":      "Éclair",
		"9lives":      "9lives",
	}
	for in, want := range tests {
		assert.Equal(t, want, Capitalize(in), "Capitalize(%q)", in)
	}
}
