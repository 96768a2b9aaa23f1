package config

import (
	"strings"

	"github.com/arthur-debert/das/pkg/errors"
	"github.com/pelletier/go-toml/v2"
)

const generatedHeader = `# das configuration
# Place this file at <anchor>/.das.toml. Every key is optional.
`

// Generate renders cfg as TOML.
func Generate(cfg *Config) (string, error) {
	out, err := toml.Marshal(cfg)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrInternal, "failed to render configuration")
	}
	return generatedHeader + "\n" + string(out), nil
}

// GenerateCommented renders cfg with every value commented out, as a
// starting point that changes nothing until edited.
func GenerateCommented(cfg *Config) (string, error) {
	content, err := Generate(cfg)
	if err != nil {
		return "", err
	}
	return commentOutConfigValues(content), nil
}

// commentOutConfigValues comments out every assignment, keeping blank
// lines, comments and section headers.
func commentOutConfigValues(content string) string {
	lines := strings.Split(content, "\n")
	result := make([]string, 0, len(lines))

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)

		switch {
		case trimmed == "",
			strings.HasPrefix(trimmed, "#"),
			strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]"):
			result = append(result, line)
		default:
			result = append(result, "# "+line)
		}
	}

	return strings.Join(result, "\n")
}
