package config

// File represents the structure of the .byteprobe configuration file.
//
//	hashes: [md5, sha256]
//	actions:
//	  - name: hexdump
//	  - name: timestamp
//	    options:
//	      format: unix32
type File struct {
	// Hashes lists the digests printed in the header.
	// If empty, the built-in defaults are used.
	Hashes []string `yaml:"hashes,omitempty"`

	// Actions is the ordered list of actions to run when none are given on
	// the command line.
	Actions []ActionSpec `yaml:"actions,omitempty"`
}

// ActionSpec names one action invocation and its per-call options.
type ActionSpec struct {
	// Name is the action kind, e.g. "hexdump".
	Name string `yaml:"name"`

	// Options override the action defaults for this invocation.
	// Unknown keys are ignored by the action.
	Options map[string]any `yaml:"options,omitempty"`
}
