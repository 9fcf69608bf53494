package config

import "strings"

// knownPlaceholder enumerates the names a command_template may reference.
// Anything else is rejected at load time by validate.
var knownPlaceholder = map[string]bool{
	"binary_path": true,
	"base":        true,
	"left":        true,
	"right":       true,
	"output_dir":  true,
	"output_file": true,
}

// Placeholders lists the {name} references in a template, in order of
// appearance. An unclosed brace is treated as literal text.
func Placeholders(template string) []string {
	var names []string
	for {
		open := strings.IndexByte(template, '{')
		if open < 0 {
			return names
		}
		rest := template[open+1:]
		end := strings.IndexByte(rest, '}')
		if end < 0 {
			return names
		}
		names = append(names, rest[:end])
		template = rest[end+1:]
	}
}

// BuildArgs turns the command template into an argument vector: the template
// is split on whitespace first, then placeholders are substituted within each
// field, so a substituted path containing spaces stays a single argument.
// The command runs with this vector directly, never through a shell.
func (t Tool) BuildArgs(vars map[string]string) []string {
	fields := strings.Fields(t.CommandTemplate)
	args := make([]string, 0, len(fields))
	for _, f := range fields {
		args = append(args, expand(f, vars))
	}
	return args
}

func expand(s string, vars map[string]string) string {
	var b strings.Builder
	for {
		open := strings.IndexByte(s, '{')
		if open < 0 {
			b.WriteString(s)
			return b.String()
		}
		rest := s[open+1:]
		end := strings.IndexByte(rest, '}')
		if end < 0 {
			b.WriteString(s)
			return b.String()
		}
		name := rest[:end]
		if v, ok := vars[name]; ok {
			b.WriteString(s[:open])
			b.WriteString(v)
		} else {
			// Unknown names survive literally; validate has already
			// rejected them for recognized-looking templates.
			b.WriteString(s[:open+1+end+1])
		}
		s = rest[end+1:]
	}
}
