package imaging

import (
	"fmt"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"go.uber.org/zap"
)

// Hints describe how an image is about to be displayed
type Hints struct {
	Quality int
	Width   int
}

// Delivery maps an image reference to the URL a browser should load
type Delivery interface {
	URL(ref string, hints Hints) string
}

// Passthrough serves image references unchanged
type Passthrough struct{}

func (Passthrough) URL(ref string, _ Hints) string { return ref }

// CloudinaryDelivery serves local image references through Cloudinary,
// applying quality and width as URL transformations.
type CloudinaryDelivery struct {
	cld    *cloudinary.Cloudinary
	folder string
	logger *zap.Logger
}

// NewCloudinaryDelivery builds a delivery from a cloudinary:// URL
func NewCloudinaryDelivery(cloudinaryURL, folder string, logger *zap.Logger) (*CloudinaryDelivery, error) {
	cld, err := cloudinary.NewFromURL(cloudinaryURL)
	if err != nil {
		return nil, fmt.Errorf("cloudinary init: %w", err)
	}
	return newCloudinaryDelivery(cld, folder, logger), nil
}

// NewCloudinaryDeliveryFromParams builds a delivery from explicit credentials
func NewCloudinaryDeliveryFromParams(cloud, key, secret, folder string, logger *zap.Logger) (*CloudinaryDelivery, error) {
	cld, err := cloudinary.NewFromParams(cloud, key, secret)
	if err != nil {
		return nil, fmt.Errorf("cloudinary init: %w", err)
	}
	return newCloudinaryDelivery(cld, folder, logger), nil
}

func newCloudinaryDelivery(cld *cloudinary.Cloudinary, folder string, logger *zap.Logger) *CloudinaryDelivery {
	if logger == nil {
		logger = zap.NewNop()
	}
	cld.Config.URL.Secure = true
	cld.Config.URL.Analytics = false
	return &CloudinaryDelivery{
		cld:    cld,
		folder: strings.Trim(folder, "/"),
		logger: logger.Named("imaging"),
	}
}

// URL returns the Cloudinary delivery URL for ref. Absolute URLs pass
// through untouched, and a failure to build the URL degrades to ref.
func (d *CloudinaryDelivery) URL(ref string, hints Hints) string {
	if ref == "" || isAbsolute(ref) {
		return ref
	}

	img, err := d.cld.Image(d.PublicID(ref))
	if err != nil {
		d.logger.Warn("cloudinary asset", zap.String("ref", ref), zap.Error(err))
		return ref
	}
	img.Transformation = Transformation(hints)

	url, err := img.String()
	if err != nil {
		d.logger.Warn("cloudinary url", zap.String("ref", ref), zap.Error(err))
		return ref
	}
	return url
}

// PublicID maps a site-relative image path to its Cloudinary public id
func (d *CloudinaryDelivery) PublicID(ref string) string {
	id := strings.TrimPrefix(ref, "/")
	if d.folder != "" {
		id = d.folder + "/" + id
	}
	return id
}

// Transformation renders hints as a Cloudinary transformation string
func Transformation(hints Hints) string {
	var parts []string
	if hints.Quality > 0 {
		parts = append(parts, fmt.Sprintf("q_%d", hints.Quality))
	}
	if hints.Width > 0 {
		parts = append(parts, fmt.Sprintf("w_%d", hints.Width))
	}
	return strings.Join(parts, ",")
}

func isAbsolute(ref string) bool {
	return strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") || strings.HasPrefix(ref, "//")
}
