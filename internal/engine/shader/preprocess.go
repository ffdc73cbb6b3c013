package shader

import (
	"fmt"
	"strings"
)

// Define is a preprocessor macro injected after the #version line.
type Define struct {
	Name  string
	Value string
}

// Source describes the text handed to Preprocess: shared snippets that
// `#include "name"` lines pull in, and macros every stage sees.
type Source struct {
	Includes map[string]string
	Defines  []Define
}

// Preprocess resolves #include lines and injects the defines. GLSL has no
// include mechanism, so included text is pasted in place; it may not include
// anything itself. The #version directive, if present, stays the first line.
func Preprocess(src string, s Source) (string, error) {
	lines := strings.Split(src, "\n")
	out := make([]string, 0, len(lines)+len(s.Defines))

	defines := make([]string, 0, len(s.Defines))
	for _, d := range s.Defines {
		if d.Name == "" || strings.ContainsAny(d.Name, " \t\n") {
			return "", fmt.Errorf("invalid define name %q", d.Name)
		}
		defines = append(defines, strings.TrimSpace("#define "+d.Name+" "+d.Value))
	}

	injected := false
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(trimmed, "#version"):
			out = append(out, line)
			out = append(out, defines...)
			injected = true
		case strings.HasPrefix(trimmed, "#include"):
			name := strings.Trim(strings.TrimSpace(strings.TrimPrefix(trimmed, "#include")), `"<>`)
			inc, ok := s.Includes[name]
			if !ok {
				return "", fmt.Errorf("line %d: unknown include %q", i+1, name)
			}
			if strings.Contains(inc, "#include") {
				return "", fmt.Errorf("line %d: nested include in %q", i+1, name)
			}
			out = append(out, inc)
		default:
			out = append(out, line)
		}
	}
	if !injected && len(defines) > 0 {
		out = append(defines, out...)
	}
	return strings.Join(out, "\n"), nil
}
