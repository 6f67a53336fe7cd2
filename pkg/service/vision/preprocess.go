package vision

import (
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/m-mizutani/goerr/v2"
	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"

	"github.com/NandhaKishorM/electron-app-heart/pkg/domain/model"
)

// InputSize is the square edge the vision encoder expects.
const InputSize = 896

// InputTensorName is the name given to the preprocessed image tensor.
const InputTensorName = "pixel_values"

var (
	imageNetMean = [3]float32{0.485, 0.456, 0.406}
	imageNetStd  = [3]float32{0.229, 0.224, 0.225}
)

// LoadImage decodes a PNG, JPEG, BMP or WebP file.
func LoadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, analysisError(err, "failed to open image", goerr.V("path", path))
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, analysisError(err, "failed to decode image", goerr.V("path", path))
	}
	if b := img.Bounds(); b.Empty() {
		return nil, goerr.Wrap(model.ErrVisionAnalysis, "image has no pixels",
			goerr.V("path", path),
			goerr.V("format", format))
	}
	return img, nil
}

// Preprocess resizes img to InputSize x InputSize with bilinear filtering
// and lays it out as planar [1,3,H,W] float32 normalized with ImageNet
// mean and std.
func Preprocess(img image.Image) model.Tensor {
	resized := image.NewNRGBA(image.Rect(0, 0, InputSize, InputSize))
	draw.BiLinear.Scale(resized, resized.Bounds(), img, img.Bounds(), draw.Src, nil)

	plane := InputSize * InputSize
	data := make([]float32, 3*plane)
	for y := 0; y < InputSize; y++ {
		for x := 0; x < InputSize; x++ {
			off := resized.PixOffset(x, y)
			idx := y*InputSize + x
			for c := 0; c < 3; c++ {
				v := float32(resized.Pix[off+c]) / 255.0
				data[c*plane+idx] = (v - imageNetMean[c]) / imageNetStd[c]
			}
		}
	}

	return model.Tensor{
		Name: InputTensorName,
		Dims: []int64{1, 3, InputSize, InputSize},
		Data: data,
	}
}

// PreprocessFile loads and preprocesses the image at path.
func PreprocessFile(path string) (model.Tensor, error) {
	img, err := LoadImage(path)
	if err != nil {
		return model.Tensor{}, err
	}
	return Preprocess(img), nil
}
