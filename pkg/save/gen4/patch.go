package gen4

import (
	"fmt"

	"github.com/hashicorp/go-hclog"
	saveerrors "github.com/provide-io/pkgender/pkg/save/errors"
)

// ChangeRequest lists the trainer properties to change. Zero values leave the
// property unchanged.
type ChangeRequest struct {
	Gender bool   // Toggle the trainer's gender
	Name   string // New trainer name, empty keeps the current one
}

// IsEmpty reports whether the request changes nothing
func (r ChangeRequest) IsEmpty() bool {
	return !r.Gender && r.Name == ""
}

// Validate checks the request before any file is touched
func (r ChangeRequest) Validate() error {
	if r.Name == "" {
		return nil
	}
	if err := ValidateName(r.Name); err != nil {
		return fmt.Errorf("%w: %w", saveerrors.ErrInvalidInput, err)
	}
	return nil
}

// Gender of the trainer, bit 0 of the gender byte
type Gender byte

const (
	Male   Gender = 0
	Female Gender = 1
)

func (g Gender) String() string {
	if g == Female {
		return "female"
	}
	return "male"
}

// Trainer is the trainer data read from small block 1
type Trainer struct {
	Name   string
	Gender Gender
}

// ReadTrainer reads the current trainer properties from image
func ReadTrainer(image []byte, layout Layout) (Trainer, error) {
	spec := layout.Spec()
	if len(image) < spec.MinImageSize() {
		return Trainer{}, fmt.Errorf("%w: %s needs %d bytes, got %d", saveerrors.ErrImageTooSmall, layout, spec.MinImageSize(), len(image))
	}

	t := Trainer{Gender: Gender(image[SmallBlock1Start+spec.GenderOffset] & 0x01)}
	nameStart := SmallBlock1Start + spec.NameOffset
	name, err := DecodeName(image[nameStart : nameStart+NameSize])
	if err != nil {
		return t, err
	}
	t.Name = name
	return t, nil
}

// Patch applies req to a copy of image under layout and rewrites both small
// block checksums. image is not modified.
func Patch(image []byte, layout Layout, req ChangeRequest, logger hclog.Logger) ([]byte, error) {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	spec := layout.Spec()
	if len(image) < spec.MinImageSize() {
		return nil, fmt.Errorf("%w: %s needs %d bytes, got %d", saveerrors.ErrImageTooSmall, layout, spec.MinImageSize(), len(image))
	}

	var nameBytes [NameSize]byte
	if req.Name != "" {
		var err error
		if nameBytes, err = EncodeName(req.Name); err != nil {
			return nil, err
		}
		logger.Debug("🔤 Internal representation of name", "name", req.Name, "bytes", fmt.Sprintf("% X", nameBytes[:]))
	}

	edited := make([]byte, len(image))
	copy(edited, image)

	if req.Gender {
		logger.Info("🔁 Changing trainer's gender")
	}
	if req.Name != "" {
		logger.Info("✏️ Changing trainer's name", "name", req.Name)
	}

	for i, base := range blockBases {
		if req.Gender {
			edited[base+spec.GenderOffset] ^= 0x01
		}
		if req.Name != "" {
			copy(edited[base+spec.NameOffset:base+spec.NameOffset+NameSize], nameBytes[:])
		}

		start, end := spec.ChecksumSpan(base)
		chk := ChecksumBytes(edited[start:end])
		slot, _ := spec.ChecksumSlot(base)
		copy(edited[slot:slot+ChecksumSize], chk[:])
		logger.Debug("🧮 Rewrote small block checksum", "layout", layout, "block", i+1, "checksum", FormatChecksum(chk))
	}

	return edited, nil
}
