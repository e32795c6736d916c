package gen4

import (
	"fmt"

	"github.com/hashicorp/go-hclog"
	saveerrors "github.com/provide-io/pkgender/pkg/save/errors"
)

// BlockCheck is the checksum state of one small block under a layout
type BlockCheck struct {
	Block      int // 1 or 2
	Calculated [ChecksumSize]byte
	Stored     [ChecksumSize]byte
}

// OK reports whether the stored checksum matches the calculated one
func (c BlockCheck) OK() bool {
	return c.Calculated == c.Stored
}

// BlockReport holds the checks of both small blocks under one layout
type BlockReport struct {
	Layout Layout
	Blocks [2]BlockCheck
}

// OK reports whether both blocks validate
func (r BlockReport) OK() bool {
	return r.Blocks[0].OK() && r.Blocks[1].OK()
}

// IntegrityWarning records a layout for which exactly one block validated
type IntegrityWarning struct {
	Layout Layout
	Block  int // The block that did not validate
}

func (w IntegrityWarning) String() string {
	ordinal := "1st"
	if w.Block == 2 {
		ordinal = "2nd"
	}
	return fmt.Sprintf("checksum for the %s small block is incorrect under %s but the other one is fine", ordinal, w.Layout)
}

// Detection is the result of a successful Detect
type Detection struct {
	Layout   Layout
	Report   BlockReport
	Warnings []IntegrityWarning
}

// Verify computes and reads back the checksums of both small blocks under layout
func Verify(image []byte, layout Layout) (BlockReport, error) {
	spec := layout.Spec()
	report := BlockReport{Layout: layout}
	if len(image) < spec.MinImageSize() {
		return report, fmt.Errorf("%w: %s needs %d bytes, got %d", saveerrors.ErrImageTooSmall, layout, spec.MinImageSize(), len(image))
	}

	for i, base := range blockBases {
		start, end := spec.ChecksumSpan(base)
		slot, _ := spec.ChecksumSlot(base)
		report.Blocks[i] = BlockCheck{
			Block:      i + 1,
			Calculated: ChecksumBytes(image[start:end]),
			Stored:     readStored(image, slot),
		}
	}
	return report, nil
}

// Detect determines the layout of image by validating both small block
// checksums under each layout in priority order. The first layout for which
// both blocks validate wins.
func Detect(image []byte, logger hclog.Logger) (*Detection, error) {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	var warnings []IntegrityWarning
	for _, layout := range Layouts() {
		logger.Info("🔍 Checking if target game is " + layout.String())

		report, err := Verify(image, layout)
		if err != nil {
			logger.Debug("⏭️ Skipping layout", "layout", layout, "error", err)
			continue
		}
		logChecks(logger, report)

		b1, b2 := report.Blocks[0].OK(), report.Blocks[1].OK()
		switch {
		case b1 && b2:
			logger.Info("✅ Target game detected", "layout", layout, "title", layout.Title())
			return &Detection{Layout: layout, Report: report, Warnings: warnings}, nil
		case b1 != b2:
			w := IntegrityWarning{Layout: layout, Block: 1}
			if b1 {
				w.Block = 2
			}
			logger.Warn("⚠️ " + w.String())
			warnings = append(warnings, w)
		}
	}

	return nil, fmt.Errorf("%w: no layout validated (%d tried)", saveerrors.ErrUnknownFormat, len(Layouts()))
}

// VerifyLayout checks image against a single, caller-chosen layout
func VerifyLayout(image []byte, layout Layout, logger hclog.Logger) (*Detection, error) {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	report, err := Verify(image, layout)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", saveerrors.ErrUnknownFormat, err)
	}
	logChecks(logger, report)

	if !report.OK() {
		return nil, fmt.Errorf("%w: checksums do not validate under %s", saveerrors.ErrUnknownFormat, layout)
	}
	logger.Info("✅ Target game verified", "layout", layout, "title", layout.Title())
	return &Detection{Layout: layout, Report: report}, nil
}

func logChecks(logger hclog.Logger, report BlockReport) {
	for _, c := range report.Blocks {
		logger.Debug("🧮 Small block checksum",
			"layout", report.Layout,
			"block", c.Block,
			"calculated", FormatChecksum(c.Calculated),
			"stored", FormatChecksum(c.Stored),
		)
	}
}
