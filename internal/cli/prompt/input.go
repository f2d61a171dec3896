package prompt

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/manifoldco/promptui"
)

// Input prompts for text input.
func Input(label, defaultValue string) (string, error) {
	return run(label, defaultValue, nil)
}

// InputPort prompts for a network port (1-65535).
func InputPort(label string, defaultValue int) (int, error) {
	result, err := run(label, strconv.Itoa(defaultValue), ValidatePort)
	if err != nil {
		return 0, err
	}
	port, _ := strconv.Atoi(result) // Already validated
	return port, nil
}

// InputDuration prompts for a non-negative duration such as "100ms".
func InputDuration(label string, defaultValue time.Duration) (time.Duration, error) {
	result, err := run(label, defaultValue.String(), ValidateDuration)
	if err != nil {
		return 0, err
	}
	d, _ := time.ParseDuration(result) // Already validated
	return d, nil
}

// InputDirectory prompts for a path; an empty answer is accepted, anything
// else must be an existing directory.
func InputDirectory(label, defaultValue string) (string, error) {
	return run(label, defaultValue, ValidateDirectory)
}

func run(label, defaultValue string, validate promptui.ValidateFunc) (string, error) {
	p := promptui.Prompt{
		Label:    label,
		Default:  defaultValue,
		Validate: validate,
	}

	result, err := p.Run()
	return result, wrapError(err)
}

// ValidatePort accepts integers between 1 and 65535.
func ValidatePort(input string) error {
	port, err := strconv.Atoi(input)
	if err != nil {
		return fmt.Errorf("must be a valid integer")
	}
	if port < 1 || port > 65535 {
		return fmt.Errorf("must be a valid port (1-65535)")
	}
	return nil
}

// ValidateDuration accepts Go durations that are zero or positive.
func ValidateDuration(input string) error {
	d, err := time.ParseDuration(input)
	if err != nil {
		return fmt.Errorf("must be a duration like 100ms or 2s")
	}
	if d < 0 {
		return fmt.Errorf("must not be negative")
	}
	return nil
}

// ValidateDirectory accepts an empty string or an existing directory.
func ValidateDirectory(input string) error {
	if input == "" {
		return nil
	}
	info, err := os.Stat(input)
	if err != nil {
		return fmt.Errorf("directory not found")
	}
	if !info.IsDir() {
		return fmt.Errorf("not a directory")
	}
	return nil
}
