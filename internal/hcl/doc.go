// Package hcl implements the config.Loader interface for HCL files.
//
// A catalog is spread over any number of .hcl files and directories. Four
// top-level block types are recognized: variable, artifact, accessor and
// script. Variable defaults must be literal values; every other attribute
// may interpolate them through the var scope, e.g.
// category = "${var.outputs}/demand".
package hcl
