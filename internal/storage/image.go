package storage

import (
	"bytes"
	"encoding/base64"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"net/url"
	"strings"

	"github.com/chai2010/webp"
	"golang.org/x/image/draw"

	"github.com/BruksfildServices01/saloes-online/internal/httperr"
)

// MaxLogoSide é o maior lado, em pixels, de um logo depois de normalizado.
const MaxLogoSide = 512

// MaxLogoPixels limita a área de um logo antes de decodificá-lo; o arquivo
// comprimido é pequeno mas a imagem em memória ocupa 4 bytes por pixel.
const MaxLogoPixels = 4096 * 4096

const webpQuality = 85

// Logo é o arquivo pronto para envio.
type Logo struct {
	Data        []byte
	Ext         string
	ContentType string
}

var passThrough = map[string]string{
	"svg":  "image/svg+xml",
	"webp": "image/webp",
}

var raster = map[string]bool{
	"png":  true,
	"jpg":  true,
	"jpeg": true,
	"gif":  true,
}

// Normalize prepara o logo para o bucket: svg e webp seguem como vieram,
// png/jpeg/gif são reduzidos para caber em MaxLogoSide e viram WebP.
func Normalize(data []byte, ext string) (Logo, error) {
	ext = strings.ToLower(strings.TrimPrefix(ext, "."))

	if ct, ok := passThrough[ext]; ok {
		return Logo{Data: data, Ext: ext, ContentType: ct}, nil
	}
	if !raster[ext] {
		return Logo{}, httperr.ErrBusiness("invalid_logo_format")
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return Logo{}, httperr.ErrBusiness("invalid_logo_image")
	}
	if cfg.Width <= 0 || cfg.Height <= 0 || int64(cfg.Width)*int64(cfg.Height) > MaxLogoPixels {
		return Logo{}, httperr.ErrBusiness("logo_dimensions_too_large")
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return Logo{}, httperr.ErrBusiness("invalid_logo_image")
	}

	var buf bytes.Buffer
	if err := webp.Encode(&buf, Fit(img, MaxLogoSide), &webp.Options{Quality: webpQuality}); err != nil {
		return Logo{}, err
	}

	return Logo{Data: buf.Bytes(), Ext: "webp", ContentType: "image/webp"}, nil
}

// Fit reduz a imagem proporcionalmente até o maior lado ser no máximo max.
// Imagens menores voltam sem alteração.
func Fit(img image.Image, max int) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= max && h <= max {
		return img
	}

	if w >= h {
		h = h * max / w
		w = max
	} else {
		w = w * max / h
		h = max
	}
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Over, nil)
	return dst
}

// DecodeDataURI lê um logo embutido ("data:image/png;base64,...").
// ok é false quando o valor não é um data URI; nesse caso ele é uma URL comum.
func DecodeDataURI(value string) (data []byte, ext string, ok bool, err error) {
	rest, found := strings.CutPrefix(value, "data:")
	if !found {
		return nil, "", false, nil
	}

	meta, payload, found := strings.Cut(rest, ",")
	if !found {
		return nil, "", true, httperr.ErrBusiness("invalid_data_uri")
	}

	mediaType, isBase64 := strings.CutSuffix(meta, ";base64")
	ext = extFor(mediaType)
	if ext == "" {
		return nil, "", true, httperr.ErrBusiness("invalid_logo_format")
	}

	if isBase64 {
		data, err = base64.StdEncoding.DecodeString(payload)
	} else {
		var s string
		s, err = url.PathUnescape(payload)
		data = []byte(s)
	}
	if err != nil {
		return nil, "", true, httperr.ErrBusiness("invalid_data_uri")
	}
	return data, ext, true, nil
}

func extFor(mediaType string) string {
	switch strings.ToLower(strings.TrimSpace(mediaType)) {
	case "image/png":
		return "png"
	case "image/jpeg", "image/jpg":
		return "jpg"
	case "image/gif":
		return "gif"
	case "image/webp":
		return "webp"
	case "image/svg+xml":
		return "svg"
	}
	return ""
}
