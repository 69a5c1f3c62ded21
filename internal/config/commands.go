package config

import (
	"context"
	"fmt"
	"io"

	"github.com/microsoft/deployr-cli/internal/errors"
	"github.com/microsoft/deployr-cli/internal/logger"
	"gopkg.in/yaml.v3"
)

// Commands implements `di config list|get|set|delete`.
type Commands struct {
	Store *Store
	Log   logger.Logger
	Out   io.Writer
}

// Usage lines for the config resource.
var Usage = []string{
	"`<app> config *` commands allow you to edit your",
	"local <app> configuration file. Valid commands are:",
	"",
	"<app> config list",
	"<app> config set    <key> <value>",
	"<app> config get    <key>",
	"<app> config delete <key>",
}

// Usage lines for the config actions.
var (
	ListUsage = []string{
		"Lists all configuration values currently",
		"set in the .diconf file",
		"",
		"<app> config list",
	}
	GetUsage = []string{
		"Prints the value of a configuration key",
		"",
		"<app> config get <key>",
	}
	SetUsage = []string{
		"Sets a configuration key. true, false and numbers",
		"are stored as such, anything else as text",
		"",
		"<app> config set <key> <value>",
	}
	DeleteUsage = []string{
		"Removes a configuration key from the .diconf file",
		"",
		"<app> config delete <key>",
	}
)

// List prints the persisted settings as YAML.
func (c *Commands) List(ctx context.Context, args []string) error {
	username := c.Store.Username()
	c.Log.Help("Hello %s here is the %s file:", username, c.Store.Path())
	c.Log.Help("To change a property type:")
	c.Log.Help("di config set <key> <value>")

	settings := c.Store.Settings()
	if len(settings) == 0 {
		c.Log.Info("No configuration values set")
		return nil
	}

	data, err := yaml.Marshal(settings)
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig, "Couldn't render the configuration", "")
	}
	_, err = c.Out.Write(data)
	return err
}

// Get prints the effective value of a single key.
func (c *Commands) Get(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return errors.New(errors.ErrValidation, "Missing key", "Usage: di config get <key>")
	}
	key := args[0]
	if !c.Store.IsSet(key) {
		c.Log.Error("No value for %s", key)
		return nil
	}

	switch v := c.Store.Get(key).(type) {
	case map[string]interface{}:
		data, err := yaml.Marshal(v)
		if err != nil {
			return errors.WrapWithCode(err, errors.ErrConfig, "Couldn't render "+key, "")
		}
		_, err = c.Out.Write(data)
		return err
	default:
		_, err := fmt.Fprintf(c.Out, "%v\n", v)
		return err
	}
}

// Set stores a value and saves the file.
func (c *Commands) Set(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return errors.New(errors.ErrValidation, "Missing key or value", "Usage: di config set <key> <value>")
	}
	key, value := args[0], args[1]
	if IsRestricted(key) {
		c.Log.Warn("Cannot set reserved key %s", key)
		return nil
	}

	c.Store.Set(key, Coerce(value))
	if err := c.Store.Save(); err != nil {
		return err
	}
	c.Log.Info("Set %s to %s", key, value)
	return nil
}

// Delete removes a key and saves the file.
func (c *Commands) Delete(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return errors.New(errors.ErrValidation, "Missing key", "Usage: di config delete <key>")
	}
	key := args[0]
	if IsRestricted(key) {
		c.Log.Warn("Cannot delete reserved setting %s", key)
		return nil
	}
	if _, ok := lookupNested(c.Store.Settings(), key); !ok {
		c.Log.Warn("No value for %s", key)
		return nil
	}

	c.Store.Clear(key)
	if err := c.Store.Save(); err != nil {
		return err
	}
	c.Log.Info("Deleted %s", key)
	return nil
}

func lookupNested(m map[string]interface{}, key string) (interface{}, bool) {
	var cur interface{} = m
	for _, part := range splitKey(key) {
		node, ok := cur.(map[string]interface{})
		if !ok {
			return nil, false
		}
		cur, ok = node[part]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}
