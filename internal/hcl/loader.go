package hcl

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"github.com/uesim/tracegraph/internal/artifact"
	"github.com/uesim/tracegraph/internal/config"
	"github.com/uesim/tracegraph/internal/ctxlog"
	"github.com/uesim/tracegraph/internal/fsutil"
)

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new HCL catalog loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load orchestrates the entire HCL loading process. It is agnostic to the
// origin of the paths and parses any recognized block from any file. The
// returned model has passed cross-reference validation.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path_count", len(paths))

	hclFiles, err := l.findAllHCLFiles(paths)
	if err != nil {
		return nil, err
	}
	if len(hclFiles) == 0 {
		logger.Warn("No HCL files found under the given paths.", "paths", paths)
	}
	logger.Debug("Discovered HCL files.", "count", len(hclFiles))

	parser := hclparse.NewParser()
	parsed := make([]*hcl.File, 0, len(hclFiles))
	for _, file := range hclFiles {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file %s: %w", file, diags)
		}
		parsed = append(parsed, hclFile)
	}

	evalCtx, err := l.buildEvalContext(hclFiles, parsed)
	if err != nil {
		return nil, err
	}

	model := config.NewModel()
	for i, hclFile := range parsed {
		if err := l.decodeFile(hclFiles[i], hclFile, evalCtx, model); err != nil {
			return nil, err
		}
	}

	if err := model.Validate(); err != nil {
		return nil, err
	}

	logger.Debug("HCL loading complete.",
		"artifacts", len(model.Artifacts),
		"accessors", len(model.Accessors),
		"scripts", len(model.Scripts),
	)
	return model, nil
}

// buildEvalContext runs the first decode pass, collecting every variable
// block into the var scope used by the full decode. Defaults are evaluated
// without any context, so they must be literals.
func (l *Loader) buildEvalContext(names []string, files []*hcl.File) (*hcl.EvalContext, error) {
	vars := make(map[string]cty.Value)
	declaredIn := make(map[string]string)

	for i, file := range files {
		var root variablesRoot
		if diags := gohcl.DecodeBody(file.Body, nil, &root); diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode variables in %s: %w", names[i], diags)
		}
		for _, v := range root.Variables {
			if prev, ok := declaredIn[v.Name]; ok {
				return nil, fmt.Errorf("variable %q in %s is already declared in %s", v.Name, names[i], prev)
			}
			declaredIn[v.Name] = names[i]
			vars[v.Name] = cty.StringVal(v.Default)
		}
	}

	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"var": cty.ObjectVal(vars),
		},
	}, nil
}

// decodeFile translates every block of one file and merges it into the model.
func (l *Loader) decodeFile(name string, file *hcl.File, evalCtx *hcl.EvalContext, model *config.Model) error {
	var root fileRoot
	if diags := gohcl.DecodeBody(file.Body, evalCtx, &root); diags.HasErrors() {
		return fmt.Errorf("failed to decode HCL file %s: %w", name, diags)
	}

	for _, block := range root.Artifacts {
		def, err := l.translateArtifact(block)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		if err := model.AddArtifact(def); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	for _, block := range root.Accessors {
		def, err := l.translateAccessor(block)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		if err := model.AddAccessor(def); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	for _, block := range root.Scripts {
		def, err := l.translateScript(block)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		if err := model.AddScript(def); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	return nil
}

func (l *Loader) translateArtifact(block *artifactBlock) (*config.ArtifactDefinition, error) {
	if block.Category == "" {
		return nil, fmt.Errorf("artifact %q: category must not be empty", block.Name)
	}
	if block.Template == "" {
		return nil, fmt.Errorf("artifact %q: template must not be empty", block.Name)
	}
	kind, err := artifact.ParseKind(block.Kind)
	if err != nil {
		return nil, fmt.Errorf("artifact %q: %w", block.Name, err)
	}
	return &config.ArtifactDefinition{
		Name:     block.Name,
		Category: block.Category,
		Template: block.Template,
		Kind:     kind,
	}, nil
}

func (l *Loader) translateAccessor(block *accessorBlock) (*config.AccessorDefinition, error) {
	if block.Artifact == "" {
		return nil, fmt.Errorf("accessor %q: artifact must not be empty", block.Name)
	}
	mode, err := artifact.ParseMode(block.Mode)
	if err != nil {
		return nil, fmt.Errorf("accessor %q: %w", block.Name, err)
	}
	return &config.AccessorDefinition{
		Name:     block.Name,
		Artifact: block.Artifact,
		Mode:     mode,
	}, nil
}

func (l *Loader) translateScript(block *scriptBlock) (*config.ScriptDefinition, error) {
	if block.Run == "" {
		return nil, fmt.Errorf("script %q: run must not be empty", block.Name)
	}
	return &config.ScriptDefinition{
		Name:        block.Name,
		Description: block.Description,
		Run:         block.Run,
	}, nil
}

// findAllHCLFiles expands the given paths into a flat list of .hcl files.
// Directories are searched recursively, explicit file paths are taken as-is.
func (l *Loader) findAllHCLFiles(paths []string) ([]string, error) {
	var files []string
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("cannot access config path %s: %w", path, err)
		}
		if info.IsDir() {
			found, err := fsutil.FindFilesByExtension(path, ".hcl")
			if err != nil {
				return nil, err
			}
			files = append(files, found...)
			continue
		}
		if filepath.Ext(path) != ".hcl" {
			return nil, fmt.Errorf("config path %s is not an .hcl file", path)
		}
		files = append(files, path)
	}
	return files, nil
}
