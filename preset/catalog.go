package preset

// builtinCategories is the catalog compiled into the binary. An operator can
// replace it wholesale with PRESET_FILE; there is no per-entry merging.
var builtinCategories = []Category{
	{
		ID:    "retouch",
		Label: "Retouch",
		Icon:  "wand",
		SubPresets: []SubPreset{
			{ID: "remove-noise", Label: "Remove Noise", Instruction: "Remove digital noise and grain from this photo while preserving fine detail and natural texture."},
			{ID: "sharpen", Label: "Sharpen", Instruction: "Sharpen this image, enhancing edge definition without introducing halos or artifacts."},
			{ID: "fix-lighting", Label: "Fix Lighting", Instruction: "Correct the exposure and lighting of this photo, recovering detail in shadows and highlights."},
			{ID: "remove-blemishes", Label: "Remove Blemishes", Instruction: "Remove skin blemishes and imperfections from this portrait while keeping skin texture realistic."},
		},
	},
	{
		ID:    "color",
		Label: "Color",
		Icon:  "palette",
		SubPresets: []SubPreset{
			{ID: "black-white", Label: "Black & White", Instruction: "Convert this photo to a rich black and white with deep blacks and balanced contrast."},
			{ID: "vintage", Label: "Vintage", Instruction: "Give this photo a faded vintage film look with warm tones and subtle grain."},
			{ID: "vibrant", Label: "Vibrant", Instruction: "Boost the color vibrance and saturation of this photo while keeping skin tones natural."},
			{ID: "golden-hour", Label: "Golden Hour", Instruction: "Relight this photo as if it were taken during golden hour, with warm soft directional light."},
		},
	},
	{
		ID:    "style",
		Label: "Style",
		Icon:  "brush",
		SubPresets: []SubPreset{
			{ID: "oil-painting", Label: "Oil Painting", Instruction: "Repaint this image in the style of a classical oil painting with visible brush strokes."},
			{ID: "watercolor", Label: "Watercolor", Instruction: "Transform this image into a soft watercolor painting with gentle color bleeds."},
			{ID: "anime", Label: "Anime", Instruction: "Redraw this image in a detailed anime art style with clean line work and cel shading."},
			{ID: "pencil-sketch", Label: "Pencil Sketch", Instruction: "Turn this image into a hand-drawn pencil sketch with cross-hatched shading."},
		},
	},
	{
		ID:    "background",
		Label: "Background",
		Icon:  "layers",
		SubPresets: []SubPreset{
			{ID: "remove-background", Label: "Remove Background", Instruction: "Remove the background from this image, leaving the main subject on a plain white backdrop."},
			{ID: "blur-background", Label: "Blur Background", Instruction: "Blur the background of this photo with a shallow depth-of-field effect, keeping the subject sharp."},
			{ID: "replace-sky", Label: "Replace Sky", Instruction: "Replace the sky in this photo with a dramatic sunset sky, matching the scene lighting."},
		},
	},
	{
		ID:    "fun",
		Label: "Fun",
		Icon:  "sparkles",
		SubPresets: []SubPreset{
			{ID: "cartoonify", Label: "Cartoonify", Instruction: "Turn this photo into a colorful cartoon with bold outlines and flat shading."},
			{ID: "pixel-art", Label: "Pixel Art", Instruction: "Recreate this image as retro 16-bit pixel art."},
			{ID: "neon-glow", Label: "Neon Glow", Instruction: "Add a cyberpunk neon glow aesthetic to this image with vivid pink and cyan lighting."},
		},
	},
}
