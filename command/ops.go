package exifcommand

import (
	"github.com/cxcheng/exifmeta"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// existingFiles requires at least one argument and that every one exists.
func existingFiles(cmd *cobra.Command, args []string) error {
	if err := cobra.MinimumNArgs(1)(cmd, args); err != nil {
		return err
	}
	return exifmeta.CheckTargets(args)
}

// StringArray is used over StringSlice so values containing commas survive.
func addMetadataFlag(flags *pflag.FlagSet, entries *[]string) {
	flags.StringArrayVarP(entries, "metadata", "m", nil, "Metadata as KEY=VALUE (repeatable)")
}

func addKeysFlag(flags *pflag.FlagSet, keys *[]string, usage string) {
	flags.StringArrayVarP(keys, "keys", "k", nil, usage)
}

func addFilterFlag(flags *pflag.FlagSet, filter *string) {
	flags.StringVar(filter, "filter", "", "Only print files whose tags satisfy this expression, e.g. 'ImageWidth > 1000'. "+
		"Tag names drop their spaces; wrap names with other symbols in brackets, e.g. '[Date/TimeOriginal] != \"\"'")
}

func newViewCommand(o *rootOptions) *cobra.Command {
	var filter string
	cmd := &cobra.Command{
		Use:   "view FILE...",
		Short: "Print all metadata of each file",
		Args:  existingFiles,
		RunE: func(cmd *cobra.Command, args []string) error {
			d := o.dispatcher(cmd, exifmeta.WithFilter(filter))
			return o.finish(d.View(cmd.Context(), args))
		},
	}
	addFilterFlag(cmd.Flags(), &filter)
	return cmd
}

func newAddCommand(o *rootOptions) *cobra.Command {
	var entries []string
	cmd := &cobra.Command{
		Use:   "add FILE...",
		Short: "Add metadata, merged over the default fields",
		Args:  existingFiles,
		RunE: func(cmd *cobra.Command, args []string) error {
			report := o.dispatcher(cmd).Add(cmd.Context(), args, o.config.DefaultFields(), entries)
			return o.finish(report)
		},
	}
	addMetadataFlag(cmd.Flags(), &entries)
	return cmd
}

func newRemoveCommand(o *rootOptions) *cobra.Command {
	var keys []string
	cmd := &cobra.Command{
		Use:   "remove FILE...",
		Short: "Remove metadata fields",
		Args:  existingFiles,
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.finish(o.dispatcher(cmd).Remove(cmd.Context(), args, keys))
		},
	}
	addKeysFlag(cmd.Flags(), &keys, "Metadata key to remove (repeatable)")
	return cmd
}

func newReplaceCommand(o *rootOptions) *cobra.Command {
	var entries []string
	cmd := &cobra.Command{
		Use:   "replace FILE...",
		Short: "Overwrite metadata fields",
		Args:  existingFiles,
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.finish(o.dispatcher(cmd).Replace(cmd.Context(), args, entries))
		},
	}
	addMetadataFlag(cmd.Flags(), &entries)
	return cmd
}

func newVerifyCommand(o *rootOptions) *cobra.Command {
	var keys []string
	var filter string
	cmd := &cobra.Command{
		Use:   "verify FILE...",
		Short: "Print a labeled metadata dump of each file",
		Args:  existingFiles,
		RunE: func(cmd *cobra.Command, args []string) error {
			// keys are accepted but the dump always covers every tag
			d := o.dispatcher(cmd, exifmeta.WithFilter(filter))
			return o.finish(d.Verify(cmd.Context(), args))
		},
	}
	addKeysFlag(cmd.Flags(), &keys, "Metadata key to verify (repeatable, currently unused)")
	addFilterFlag(cmd.Flags(), &filter)
	return cmd
}
