package imaging

import (
	"bytes"
	"strings"

	"github.com/suyashkumar/dicom"
	"github.com/suyashkumar/dicom/pkg/tag"
)

// isDICOM reports whether data carries the Part 10 preamble: 128 bytes
// followed by the "DICM" magic.
func isDICOM(data []byte) bool {
	return len(data) >= 132 && string(data[128:132]) == "DICM"
}

// acquireDICOM parses the header of a DICOM file. Pixel data is skipped; the
// analysis only needs to know an image was supplied.
func acquireDICOM(name string, data []byte) (*Image, error) {
	ds, err := dicom.Parse(bytes.NewReader(data), int64(len(data)), nil, dicom.SkipPixelData())
	if err != nil {
		return nil, &InvalidImageTypeError{Name: name, MediaType: MediaTypeDICOM, Err: err}
	}

	img := &Image{
		Name:      name,
		MediaType: MediaTypeDICOM,
		Format:    "dicom",
		Data:      data,
		Width:     firstInt(ds, tag.Columns),
		Height:    firstInt(ds, tag.Rows),
		Modality:  firstString(ds, tag.Modality),
		BodyPart:  firstString(ds, tag.BodyPartExamined),
	}
	return img, nil
}

func firstString(ds dicom.Dataset, t tag.Tag) string {
	elem, err := ds.FindElementByTag(t)
	if err != nil || elem == nil || elem.Value == nil {
		return ""
	}
	if elem.Value.ValueType() != dicom.Strings {
		return ""
	}
	values := dicom.MustGetStrings(elem.Value)
	if len(values) == 0 {
		return ""
	}
	return strings.TrimSpace(values[0])
}

func firstInt(ds dicom.Dataset, t tag.Tag) int {
	elem, err := ds.FindElementByTag(t)
	if err != nil || elem == nil || elem.Value == nil {
		return 0
	}
	if elem.Value.ValueType() != dicom.Ints {
		return 0
	}
	values := dicom.MustGetInts(elem.Value)
	if len(values) == 0 {
		return 0
	}
	return values[0]
}
