// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// ConvertConfig holds settings for the mesh-to-U3D conversion stage.
type ConvertConfig struct {
	// OutputDir is the base directory for generated artifacts
	// (contains obj/, idtf/, u3d/, pdf/).
	OutputDir string `json:"output_dir" yaml:"output_dir"`

	// Clean enables mesh cleaning (duplicate vertex merge, duplicate
	// and degenerate face removal) before export.
	Clean bool `json:"clean" yaml:"clean"`

	// SimplifyTarget is the decimation face budget. Zero disables
	// simplification.
	SimplifyTarget int `json:"simplify_target" yaml:"simplify_target"`

	// KeepIDTF retains the intermediate IDTF file after conversion.
	KeepIDTF bool `json:"keep_idtf" yaml:"keep_idtf"`

	// SaveSTL writes the processed mesh as binary STL under
	// OutputDir/obj/ before export.
	SaveSTL bool `json:"save_stl" yaml:"save_stl"`

	// ConverterPath overrides converter autodetection with an explicit
	// IDTF-to-U3D converter binary.
	ConverterPath string `json:"converter_path,omitempty" yaml:"converter_path,omitempty"`
}

// EmbedConfig holds settings for the PDF embedding stage.
type EmbedConfig struct {
	// Title is the heading printed above the 3D viewport. Defaults to
	// the input file stem.
	Title string `json:"title,omitempty" yaml:"title,omitempty"`

	// Placeholder embeds a generated minimal U3D blob instead of the
	// input file. Useful for checking viewer behavior.
	Placeholder bool `json:"placeholder" yaml:"placeholder"`

	// Validate runs a pdfcpu structural validation pass over the
	// finished document, reporting problems as warnings.
	Validate bool `json:"validate" yaml:"validate"`

	// Optimize runs a pdfcpu optimization pass over the finished
	// document.
	Optimize bool `json:"optimize" yaml:"optimize"`
}

// CatalogConfig holds settings for the conversion history catalog.
type CatalogConfig struct {
	// HistoryDir is the directory holding the history database and
	// exports.
	HistoryDir string `json:"history_dir" yaml:"history_dir"`

	// Disabled turns off history recording entirely.
	Disabled bool `json:"disabled" yaml:"disabled"`

	// MaxResults caps the number of rows returned by listings
	// (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// PipelineConfig groups all stage configurations.
type PipelineConfig struct {
	Convert ConvertConfig `json:"convert" yaml:"convert"`
	Embed   EmbedConfig   `json:"embed" yaml:"embed"`
	Catalog CatalogConfig `json:"catalog" yaml:"catalog"`
}
