package hcl

import "github.com/hashicorp/hcl/v2"

// variablesRoot is the first-pass schema. It captures variable blocks and
// ignores everything else so the var scope can be built before the full
// decode runs.
type variablesRoot struct {
	Variables []*variableBlock `hcl:"variable,block"`
	Remain    hcl.Body         `hcl:",remain"`
}

// fileRoot is the second-pass schema used to decode all top-level blocks
// from any file.
type fileRoot struct {
	Variables []*variableBlock `hcl:"variable,block"`
	Artifacts []*artifactBlock `hcl:"artifact,block"`
	Accessors []*accessorBlock `hcl:"accessor,block"`
	Scripts   []*scriptBlock   `hcl:"script,block"`
	Remain    hcl.Body         `hcl:",remain"`
}

// variableBlock declares a named string value for interpolation.
type variableBlock struct {
	Name    string `hcl:"name,label"`
	Default string `hcl:"default"`
}

// artifactBlock declares a file the toolkit knows how to locate.
type artifactBlock struct {
	Name     string `hcl:"name,label"`
	Category string `hcl:"category"`
	Template string `hcl:"template"`
	Kind     string `hcl:"kind"`
}

// accessorBlock binds an accessor name to an artifact and an access mode.
type accessorBlock struct {
	Name     string `hcl:"name,label"`
	Artifact string `hcl:"artifact"`
	Mode     string `hcl:"mode"`
}

// scriptBlock declares a runnable script and its Go handler.
type scriptBlock struct {
	Name        string `hcl:"name,label"`
	Description string `hcl:"description,optional"`
	Run         string `hcl:"run"`
}
