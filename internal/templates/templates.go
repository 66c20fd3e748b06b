// Package templates holds the embedded project and module templates.
//
// Rendering is pure: functions here return generator.Files and never touch
// the file system. package.json and kestrel.yml are not templates; they are
// marshaled from structs by the scaffolder.
package templates

import (
	"embed"
	"fmt"

	"github.com/simonhull/firebird-suite/kestrel/internal/generator"
)

//go:embed templates
var templatesFS embed.FS

// ProjectData parameterizes the project templates.
type ProjectData struct {
	Name string
}

// ModuleData parameterizes the module templates.
type ModuleData struct {
	Name        string // as typed by the user, e.g. "order"
	Capitalized string // first character uppercased, e.g. "Order"
	HasModel    bool
}

// NewModuleData derives template data from a module name.
func NewModuleData(name string, hasModel bool) ModuleData {
	return ModuleData{
		Name:        name,
		Capitalized: generator.Capitalize(name),
		HasModel:    hasModel,
	}
}

type entry struct {
	template string
	path     string
}

var projectFiles = []entry{
	{"templates/project/tsconfig.json.tmpl", "tsconfig.json"},
	{"templates/project/nodemon.json.tmpl", "nodemon.json"},
	{"templates/project/gitignore.tmpl", ".gitignore"},
	{"templates/project/eslint.config.mjs.tmpl", "eslint.config.mjs"},
	{"templates/project/prettierrc.tmpl", ".prettierrc"},
	{"templates/project/README.md.tmpl", "README.md"},
	{"templates/project/env.tmpl", ".env"},
	{"templates/project/src/app.ts.tmpl", "src/app.ts"},
	{"templates/project/src/server.ts.tmpl", "src/server.ts"},
	{"templates/project/src/config/index.ts.tmpl", "src/config/index.ts"},
	{"templates/project/src/middlewares/globalErrorHandler.ts.tmpl", "src/middlewares/globalErrorHandler.ts"},
	{"templates/project/src/middlewares/notFound.ts.tmpl", "src/middlewares/notFound.ts"},
	{"templates/project/src/middlewares/requestLogger.ts.tmpl", "src/middlewares/requestLogger.ts"},
	{"templates/project/src/middlewares/validateRequest.ts.tmpl", "src/middlewares/validateRequest.ts"},
	{"templates/project/src/utils/logger.ts.tmpl", "src/utils/logger.ts"},
	{"templates/project/src/interface/error.ts.tmpl", "src/interface/error.ts"},
}

// ProjectDirs is the skeleton created under a new project root.
var ProjectDirs = []string{
	"src",
	"src/config",
	"src/middlewares",
	"src/modules",
	"src/utils",
	"src/interface",
}

// Project renders every static project file. Paths are relative to the
// project root.
func Project(r *generator.Renderer, data ProjectData) ([]generator.File, error) {
	return render(r, projectFiles, data)
}

// Module renders the files of one module. Paths are relative to the module
// directory. Four files are always produced; the model and interface files
// are added when data.HasModel is set.
func Module(r *generator.Renderer, data ModuleData) ([]generator.File, error) {
	entries := []entry{
		{"templates/module/route.ts.tmpl", data.Name + ".route.ts"},
		{"templates/module/controller.ts.tmpl", data.Name + ".controller.ts"},
		{"templates/module/validation.ts.tmpl", data.Name + ".validation.ts"},
		{"templates/module/service.ts.tmpl", data.Name + ".service.ts"},
	}
	if data.HasModel {
		entries = append(entries,
			entry{"templates/module/model.ts.tmpl", data.Name + ".model.ts"},
			entry{"templates/module/interface.ts.tmpl", data.Name + ".interface.ts"},
		)
	}
	return render(r, entries, data)
}

func render(r *generator.Renderer, entries []entry, data any) ([]generator.File, error) {
	files := make([]generator.File, 0, len(entries))
	for _, e := range entries {
		content, err := r.RenderFS(templatesFS, e.template, data)
		if err != nil {
			return nil, fmt.Errorf("rendering %s: %w", e.path, err)
		}
		files = append(files, generator.File{Path: e.path, Content: content})
	}
	return files, nil
}
