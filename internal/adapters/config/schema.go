package config

// DefaultFilename is the configuration file looked up in the working
// directory.
const DefaultFilename = "fnpack.yaml"

// Defaults applied to fields left empty in the configuration file.
const (
	DefaultEntryPoint = "handler.py"
	DefaultManifest   = "requirements.txt"
	DefaultIgnoreFile = ".packageignore"
	DefaultPrefix     = ".fnpack/prefix"
	DefaultArchive    = "function.zip"
	DefaultPython     = "python3"
)

// Packfile represents the structure of the fnpack.yaml configuration file.
// Every field is optional; empty fields take the documented defaults.
type Packfile struct {
	EntryPoint        string `yaml:"entrypoint"`
	Manifest          string `yaml:"manifest"`
	IgnoreFile        string `yaml:"ignore_file"`
	Prefix            string `yaml:"prefix"`
	Archive           string `yaml:"archive"`
	Python            string `yaml:"python"`
	ReportInterimSize bool   `yaml:"report_interim_size"`
}
