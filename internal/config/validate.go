package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateAudio(); err != nil {
		return err
	}
	if err := c.validateOutput(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validatePaths() error {
	if strings.TrimSpace(c.Paths.AudioDir) == "" {
		return errors.New("paths.audio_dir must be set")
	}
	return nil
}

func (c *Config) validateAudio() error {
	switch c.Audio.Format {
	case "mp3", "ogg_vorbis", "pcm":
		return nil
	default:
		return fmt.Errorf("audio.format must be one of mp3, ogg_vorbis, pcm (got %q)", c.Audio.Format)
	}
}

func (c *Config) validateOutput() error {
	switch c.Output.Delimiter {
	case "comma", "tab":
		return nil
	default:
		return fmt.Errorf("output.delimiter must be comma or tab (got %q)", c.Output.Delimiter)
	}
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json (got %q)", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
		return nil
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error (got %q)", c.Logging.Level)
	}
}
