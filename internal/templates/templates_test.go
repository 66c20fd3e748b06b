package templates

import (
	"io/fs"
	"path"
	"strings"
	"testing"

	"github.com/simonhull/firebird-suite/kestrel/internal/generator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func filesByPath(files []generator.File) map[string]string {
	m := make(map[string]string, len(files))
	for _, f := range files {
		m[f.Path] = string(f.Content)
	}
	return m
}

func TestProject_RendersEveryFile(t *testing.T) {
	files, err := Project(generator.NewRenderer(), ProjectData{Name: "demo"})
	require.NoError(t, err)

	got := filesByPath(files)
	want := []string{
		"tsconfig.json", "nodemon.json", ".gitignore", "eslint.config.mjs", ".prettierrc",
		"README.md", ".env", "src/app.ts", "src/server.ts", "src/config/index.ts",
		"src/middlewares/globalErrorHandler.ts", "src/middlewares/notFound.ts",
		"src/middlewares/requestLogger.ts", "src/middlewares/validateRequest.ts",
		"src/utils/logger.ts", "src/interface/error.ts",
	}
	assert.Len(t, got, len(want))
	for _, p := range want {
		assert.Contains(t, got, p)
		assert.NotEmpty(t, got[p], p)
	}
}

func TestProject_FilesLiveInDeclaredDirs(t *testing.T) {
	files, err := Project(generator.NewRenderer(), ProjectData{Name: "demo"})
	require.NoError(t, err)

	allowed := map[string]bool{".": true, "src": true}
	for _, d := range ProjectDirs {
		allowed[d] = true
	}
	for _, f := range files {
		assert.True(t, allowed[path.Dir(f.Path)], "%s is outside the project layout", f.Path)
	}
}

func TestProject_AppHasBothMarkersOnce(t *testing.T) {
	files, err := Project(generator.NewRenderer(), ProjectData{Name: "demo"})
	require.NoError(t, err)

	app := filesByPath(files)["src/app.ts"]
	assert.Equal(t, 1, strings.Count(app, "// <new-import-here>"))
	assert.Equal(t, 1, strings.Count(app, "// <new-route-here>"))
	assert.Less(t, strings.Index(app, "// <new-import-here>"), strings.Index(app, "// <new-route-here>"))
}

func TestProject_UsesName(t *testing.T) {
	files, err := Project(generator.NewRenderer(), ProjectData{Name: "inventory-api"})
	require.NoError(t, err)

	got := filesByPath(files)
	assert.Contains(t, got["README.md"], "# inventory-api")
	assert.Contains(t, got[".env"], "DATABASE_URL=mongodb://127.0.0.1:27017/inventory-api")
}

func TestModule_WithoutModel(t *testing.T) {
	files, err := Module(generator.NewRenderer(), NewModuleData("order", false))
	require.NoError(t, err)
	require.Len(t, files, 4)

	got := filesByPath(files)
	for _, p := range []string{"order.route.ts", "order.controller.ts", "order.validation.ts", "order.service.ts"} {
		assert.Contains(t, got, p)
	}

	service := got["order.service.ts"]
	assert.Contains(t, service, "const createOrderIntoDB = async (payload: Record<string, unknown>) => payload;")
	assert.NotContains(t, service, "findById")
	assert.NotContains(t, service, "order.model")
}

func TestModule_WithModel(t *testing.T) {
	files, err := Module(generator.NewRenderer(), NewModuleData("order", true))
	require.NoError(t, err)
	require.Len(t, files, 6)

	got := filesByPath(files)
	assert.Contains(t, got, "order.model.ts")
	assert.Contains(t, got, "order.interface.ts")

	service := got["order.service.ts"]
	assert.True(t, strings.HasPrefix(service, "import { TOrder } from './order.interface';"))
	for _, call := range []string{"Order.create(", "Order.find()", "Order.findById(", "Order.findByIdAndUpdate(", "Order.findByIdAndDelete("} {
		assert.Contains(t, service, call)
	}

	assert.Contains(t, got["order.model.ts"], "export const Order = model<TOrder>('Order', orderSchema);")
	assert.Contains(t, got["order.interface.ts"], "export type TOrder = {")
}

func TestModule_RouteExportMatchesInjectedImport(t *testing.T) {
	files, err := Module(generator.NewRenderer(), NewModuleData("userProfile", false))
	require.NoError(t, err)

	route := filesByPath(files)["userProfile.route.ts"]
	assert.Contains(t, route, "export const userProfileRoutes = router;")
	assert.Contains(t, route, "UserProfileControllers.getAllUserProfiles")
}

func TestNewModuleData(t *testing.T) {
	d := NewModuleData("order", true)
	assert.Equal(t, ModuleData{Name: "order", Capitalized: "Order", HasModel: true}, d)
}

func TestTemplatesHaveNoLeftoverActions(t *testing.T) {
	r := generator.NewRenderer()
	project, err := Project(r, ProjectData{Name: "demo"})
	require.NoError(t, err)
	module, err := Module(r, NewModuleData("order", true))
	require.NoError(t, err)

	for _, f := range append(project, module...) {
		assert.NotContains(t, string(f.Content), "{{", f.Path)
		assert.NotContains(t, string(f.Content), "<no value>", f.Path)
	}
}

func TestEveryEmbeddedTemplateIsUsed(t *testing.T) {
	used := map[string]bool{}
	for _, e := range projectFiles {
		used[e.template] = true
	}
	for _, name := range []string{"route", "controller", "validation", "service", "model", "interface"} {
		used["templates/module/"+name+".ts.tmpl"] = true
	}

	err := fs.WalkDir(templatesFS, "templates", func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		assert.True(t, used[p], "embedded template %s is never rendered", p)
		return nil
	})
	require.NoError(t, err)
}
