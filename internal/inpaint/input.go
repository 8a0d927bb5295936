// Package inpaint talks to the hosted fooocus inpainting model and tracks the
// single generation request the page can have in flight.
package inpaint

// Fixed request values of the demo page.
const (
	// DefaultSourceImage is the photo the mask is painted over.
	DefaultSourceImage = "https://raw.githubusercontent.com/CompVis/latent-diffusion/main/data/inpainting_examples/overture-creations-5sI6fQgYIuo.png"
	// DefaultSeed keeps results reproducible between runs.
	DefaultSeed = 176400
	// PromptSuffix is appended to every user prompt.
	PromptSuffix = ", realistic, highly detailed, 8k"

	offsetLoRA = "https://huggingface.co/stabilityai/stable-diffusion-xl-base-1.0/resolve/main/sd_xl_offset_example-lora_1.0.safetensors"
)

// NegativePrompt is sent unchanged with every request.
const NegativePrompt = "(worst quality, low quality, normal quality, lowres, low details, oversaturated, undersaturated, overexposed, underexposed, grayscale, bw, bad photo, bad photography, bad art:1.4), (watermark, signature, text font, username, error, logo, words, letters, digits, autograph, trademark, name:1.2), (blur, blurry, grainy), morbid, ugly, asymmetrical, mutated malformed, mutilated, poorly lit, bad shadow, draft, cropped, out of frame, cut off, censored, jpeg artifacts, out of focus, glitch, duplicate, (airbrushed, cartoon, anime, semi-realistic, cgi, render, blender, digital art, manga, amateur:1.3), (3D ,3D Game, 3D Game Scene, 3D Character:1.1), (bad hands, bad anatomy, bad body, bad face, bad teeth, bad arms, bad legs, deformities:1.3)"

// LoRA is an extra weight file applied by the model.
type LoRA struct {
	Path  string  `json:"path"`
	Scale float64 `json:"scale"`
}

// ImagePrompt is one of the four image prompt slots; all are left empty.
type ImagePrompt struct {
	Type   string  `json:"type"`
	StopAt float64 `json:"stop_at"`
	Weight float64 `json:"weight"`
}

// Input is the request body of fal-ai/fooocus/inpaint.
type Input struct {
	Prompt                 string      `json:"prompt"`
	NegativePrompt         string      `json:"negative_prompt"`
	Styles                 []string    `json:"styles"`
	Performance            string      `json:"performance"`
	GuidanceScale          float64     `json:"guidance_scale"`
	Sharpness              float64     `json:"sharpness"`
	AspectRatio            string      `json:"aspect_ratio"`
	NumImages              int         `json:"num_images"`
	LoRAs                  []LoRA      `json:"loras"`
	RefinerModel           string      `json:"refiner_model"`
	RefinerSwitch          float64     `json:"refiner_switch"`
	OutputFormat           string      `json:"output_format"`
	Seed                   int         `json:"seed"`
	InpaintImageURL        string      `json:"inpaint_image_url"`
	MaskImageURL           string      `json:"mask_image_url"`
	InpaintMode            string      `json:"inpaint_mode"`
	OutpaintSelections     []string    `json:"outpaint_selections"`
	InpaintEngine          string      `json:"inpaint_engine"`
	InpaintStrength        float64     `json:"inpaint_strength"`
	InpaintRespectiveField float64     `json:"inpaint_respective_field"`
	ImagePrompt1           ImagePrompt `json:"image_prompt_1"`
	ImagePrompt2           ImagePrompt `json:"image_prompt_2"`
	ImagePrompt3           ImagePrompt `json:"image_prompt_3"`
	ImagePrompt4           ImagePrompt `json:"image_prompt_4"`
	EnableSafetyChecker    bool        `json:"enable_safety_checker"`
}

// NewInput fills the fixed generation parameters around the user prompt, the
// source image and the exported mask.
func NewInput(prompt, source, mask string, seed int) Input {
	slot := ImagePrompt{Type: "ImagePrompt", StopAt: 0.5, Weight: 1}
	return Input{
		Prompt:                 prompt + PromptSuffix,
		NegativePrompt:         NegativePrompt,
		Styles:                 []string{"Fooocus Sharp", "Fooocus Enhance", "Fooocus V2"},
		Performance:            "Extreme Speed",
		GuidanceScale:          4,
		Sharpness:              2,
		AspectRatio:            "512x512",
		NumImages:              1,
		LoRAs:                  []LoRA{{Path: offsetLoRA, Scale: 0.1}},
		RefinerModel:           "None",
		RefinerSwitch:          0.8,
		OutputFormat:           "jpeg",
		Seed:                   seed,
		InpaintImageURL:        source,
		MaskImageURL:           mask,
		InpaintMode:            "Inpaint or Outpaint (default)",
		OutpaintSelections:     []string{},
		InpaintEngine:          "v2.6",
		InpaintStrength:        1,
		InpaintRespectiveField: 0.618,
		ImagePrompt1:           slot,
		ImagePrompt2:           slot,
		ImagePrompt3:           slot,
		ImagePrompt4:           slot,
		EnableSafetyChecker:    true,
	}
}

// Image is one generated result.
type Image struct {
	URL         string `json:"url"`
	Width       int    `json:"width,omitempty"`
	Height      int    `json:"height,omitempty"`
	ContentType string `json:"content_type,omitempty"`
}

// Output is the result body of a completed request.
type Output struct {
	Images []Image `json:"images"`
	Seed   int64   `json:"seed,omitempty"`
}
