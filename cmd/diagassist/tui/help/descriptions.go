package help

// HelpText describes one form field.
type HelpText struct {
	Title       string
	Description string
	Details     string
}

// Texts is keyed by form field key.
var Texts = map[string]HelpText{
	"symptoms": {
		Title:       "SYMPTOMS",
		Description: "Describe what you are experiencing in your own words.",
		Details: `Recognised keywords: headache, chest pain, cough, fever.
Several keywords can match; their conditions are combined.
Leave empty to analyse an image only.`,
	},
	"image": {
		Title:       "MEDICAL IMAGE",
		Description: "Optional path to an X-ray or scan.",
		Details: `Accepted: PNG, JPEG, GIF, BMP, TIFF, WebP and DICOM files.
Anything else is rejected with "Please upload an image file".
Leave empty to analyse symptoms only.`,
	},
	"category": {
		Title:       "IMAGE TYPE",
		Description: "Body region shown on the image.",
		Details: `Chest X-ray - lungs and heart
Brain MRI - head scans
Only used when an image is selected.`,
	},
	"action": {
		Title:       "NEXT STEP",
		Description: "What to do with this report.",
		Details: `New analysis clears symptoms, image and report.
Exports write the report as YAML or PDF.`,
	},
	"export_path": {
		Title:       "EXPORT PATH",
		Description: "File to write the report to.",
		Details:     "Parent directories are created when missing.",
	},
}
