// Package input parses what the user types into the dashboard prompt.
package input

import "strings"

// Command is a prompt command offered for completion.
type Command struct {
	Name  string
	Usage string
}

// Match returns the commands whose name starts with the typed word. Nothing
// matches once an argument is being typed or when the input is not a command.
func Match(input string, commands []Command) []Command {
	word := strings.ToLower(strings.TrimLeft(input, " "))
	if !strings.HasPrefix(word, "/") || strings.ContainsRune(word, ' ') {
		return nil
	}

	var out []Command
	for _, c := range commands {
		if strings.HasPrefix(strings.ToLower(c.Name), word) {
			out = append(out, c)
		}
	}
	return out
}

// Complete returns the first matching command followed by a space, ready for
// its argument.
func Complete(input string, commands []Command) (string, bool) {
	if m := Match(input, commands); len(m) > 0 {
		return m[0].Name + " ", true
	}
	return "", false
}

// ParseCommand splits prompt input into a command name and its argument.
// Input without a leading slash is treated as a /jump argument.
func ParseCommand(input string) (name, arg string) {
	input = strings.TrimSpace(input)
	if !strings.HasPrefix(input, "/") {
		return "/jump", input
	}
	name, arg, _ = strings.Cut(input, " ")
	return strings.ToLower(name), strings.TrimSpace(arg)
}
