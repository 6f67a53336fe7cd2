package usecase

// BuildPrompt is exported for testing
var BuildPrompt = buildPrompt

// ImageMIMEType is exported for testing
var ImageMIMEType = imageMIMEType
