package appsettings

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/reoring/appsettings/settingsdoc"
)

// MergeOptions configures Merge.
type MergeOptions struct {
	Read  settingsdoc.ReadFormat
	Write settingsdoc.WriteOptions
}

// DefaultMergeOptions reads leniently and writes canonical JSON atomically.
func DefaultMergeOptions() MergeOptions {
	return MergeOptions{
		Read:  settingsdoc.LenientRead,
		Write: settingsdoc.WriteOptions{Format: settingsdoc.CanonicalWrite, Atomic: true},
	}
}

// MergeResult describes a completed Merge.
type MergeResult struct {
	// Document is the document as written.
	Document *settingsdoc.Document
	// Appended lists the residual keys written, in order.
	Appended []string
	// Skipped holds an already_present issue per residual key the file
	// defined before the merge.
	Skipped Issues
}

// Merge rewrites the settings file at path with the residual settings
// appended. Existing properties are re-emitted first, in their original
// order and with their values unchanged; a missing file is treated as {}.
// Each residual setting is written with the type chosen by Infer.
//
// A residual key that names a property the file already had (ignoring case)
// is not written and is reported in Skipped. Residual keys are only compared
// with the file's original properties, so keys that differ from each other
// only in case are all appended.
func Merge(ctx context.Context, path string, residual *ResidualSet, opt MergeOptions) (*MergeResult, error) {
	log := LoggerFrom(ctx)

	doc, err := settingsdoc.ReadFile(ctx, path, opt.Read)
	if err != nil {
		return nil, err
	}
	res := &MergeResult{Document: doc.Clone()}
	for key, raw := range residual.All() {
		if doc.Has(key) {
			it := newIssue(filepath.Base(path), "/"+key, CodeAlreadyPresent,
				map[string]string{"key": key, "source": filepath.Base(path)})
			res.Skipped = append(res.Skipped, it)
			log.WithFields(logrus.Fields{"key": key, "file": path}).Warn(it.Message)
			continue
		}
		v := Infer(raw)
		b, err := v.JSON()
		if err != nil {
			return nil, fmt.Errorf("encoding setting %s: %w", key, err)
		}
		res.Document.Append(key, b)
		res.Appended = append(res.Appended, key)
		log.WithFields(logrus.Fields{"key": key, "kind": v.Kind.String()}).Debug("setting merged")
	}
	if err := settingsdoc.WriteFile(ctx, path, res.Document, opt.Write); err != nil {
		return nil, err
	}
	res.Document.Path = path
	res.Document.Exists = true
	return res, nil
}
