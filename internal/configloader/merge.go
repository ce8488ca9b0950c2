package configloader

import (
	"slices"

	"github.com/yaklabco/gowsfmt/pkg/config"
)

// merge combines two configurations, with override taking precedence over base.
// The merge follows these rules:
//   - Strings and jobs: override wins when non-zero
//   - Pointer fields: override wins when non-nil, so false and -1 can be set
//   - Slices: override replaces base entirely when non-nil
//   - CheckOnly and NoBackups: override can only switch them on
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	result := base.Clone()

	result.Whitespace = mergeWhitespace(result.Whitespace, override.Whitespace)

	if override.Ignore != nil {
		result.Ignore = slices.Clone(override.Ignore)
	}
	if override.Exclude != nil {
		result.Exclude = slices.Clone(override.Exclude)
	}

	mergeBool(&result.FollowSymlinks, override.FollowSymlinks)
	mergeBool(&result.Hidden, override.Hidden)
	mergeBool(&result.SkipVendored, override.SkipVendored)
	mergeBool(&result.SkipGenerated, override.SkipGenerated)

	if override.Jobs != 0 {
		result.Jobs = override.Jobs
	}

	mergeBool(&result.Backups.Enabled, override.Backups.Enabled)
	mergeString(&result.Backups.Mode, override.Backups.Mode)

	if override.Format != "" {
		result.Format = override.Format
	}
	if override.CheckOnly {
		result.CheckOnly = true
	}
	if override.NoBackups {
		result.NoBackups = true
	}

	return result
}

func mergeWhitespace(base, override config.WhitespaceConfig) config.WhitespaceConfig {
	result := base

	mergeString(&result.NewLineMarker, override.NewLineMarker)
	mergeBool(&result.AddNewLineMarkerAtEndOfFile, override.AddNewLineMarkerAtEndOfFile)
	mergeBool(&result.RemoveNewLineMarkerFromEndOfFile, override.RemoveNewLineMarkerFromEndOfFile)
	mergeBool(&result.NormalizeNewLineMarkers, override.NormalizeNewLineMarkers)
	mergeBool(&result.RemoveTrailingWhitespace, override.RemoveTrailingWhitespace)
	mergeBool(&result.RemoveLeadingEmptyLines, override.RemoveLeadingEmptyLines)
	mergeBool(&result.RemoveTrailingEmptyLines, override.RemoveTrailingEmptyLines)
	mergeString(&result.NormalizeNonStandardWhitespace, override.NormalizeNonStandardWhitespace)
	mergeString(&result.NormalizeEmptyFiles, override.NormalizeEmptyFiles)
	mergeString(&result.NormalizeWhitespaceOnlyFiles, override.NormalizeWhitespaceOnlyFiles)

	if override.ReplaceTabsWithSpaces != nil {
		result.ReplaceTabsWithSpaces = config.Int(*override.ReplaceTabsWithSpaces)
	}

	return result
}

func mergeBool(dst **bool, override *bool) {
	if override != nil {
		*dst = config.Bool(*override)
	}
}

func mergeString(dst *string, override string) {
	if override != "" {
		*dst = override
	}
}

// MergeAll merges multiple configurations in order, with later configs taking precedence.
func MergeAll(configs ...*config.Config) *config.Config {
	if len(configs) == 0 {
		return nil
	}

	result := configs[0]
	for i := 1; i < len(configs); i++ {
		result = merge(result, configs[i])
	}
	return result
}
