package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/moopad/pkg/config"
	"github.com/arthur-debert/moopad/pkg/errors"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newGenConfigCmd(opts *rootOptions) *cobra.Command {
	var (
		kind  string
		write bool
		force bool
	)

	cmd := &cobra.Command{
		Use:     "gen-config",
		Short:   MsgGenConfigShort,
		Long:    MsgGenConfigLong,
		Example: MsgGenConfigExample,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := generateConfig(kind)
			if err != nil {
				return err
			}

			if !write {
				_, err := cmd.OutOrStdout().Write(data)
				return err
			}

			path := opts.configFile
			if !cmd.Flags().Changed("config-file") && strings.EqualFold(kind, "toml") {
				path = strings.TrimSuffix(path, filepath.Ext(path)) + ".toml"
			}
			if err := writeConfig(afero.NewOsFs(), path, data, force); err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), MsgConfigWritten, path)
			return err
		},
	}

	cmd.Flags().StringVarP(&kind, "type", "t", "yaml", MsgFlagGenType)
	cmd.Flags().BoolVarP(&write, "write", "w", false, MsgFlagGenWrite)
	cmd.Flags().BoolVar(&force, "force", false, MsgFlagGenForce)

	return cmd
}

// generateConfig returns the starter configuration in the requested
// flavour. The TOML one is converted from the YAML sample, so it loses
// the comments.
func generateConfig(kind string) ([]byte, error) {
	switch strings.ToLower(kind) {
	case "yaml", "yml":
		return config.SampleConfig(), nil
	case "toml":
		var doc map[string]interface{}
		if err := yaml.Unmarshal(config.SampleConfig(), &doc); err != nil {
			return nil, errors.Wrap(err, errors.ErrInternal, "cannot decode the sample configuration")
		}
		body, err := toml.Marshal(doc)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrInternal, "cannot encode the sample configuration as TOML")
		}
		return append([]byte(MsgTomlHeader), body...), nil
	default:
		return nil, errors.Newf(errors.ErrInvalidInput, MsgUnknownGenType, kind)
	}
}

// writeConfig saves data at path, refusing to clobber an existing file
// unless force is set
func writeConfig(fs afero.Fs, path string, data []byte, force bool) error {
	exists, err := afero.Exists(fs, path)
	if err != nil {
		return errors.Wrapf(err, errors.ErrInternal, "cannot check %s", path)
	}
	if exists && !force {
		return errors.Newf(errors.ErrInvalidInput, MsgConfigExists, path).WithDetail("path", path)
	}

	if err := afero.WriteFile(fs, path, data, 0644); err != nil {
		return errors.Wrapf(err, errors.ErrInternal, "cannot write %s", path)
	}
	return nil
}
