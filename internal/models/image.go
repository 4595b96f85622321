package models

import (
	"github.com/KDAtkins/infrastructure/internal/identity"
	"github.com/KDAtkins/infrastructure/internal/validation"
)

const MaxMediaRefLen = 255

// Image points at a photo kept by the external media host. Coordinates are
// optional and may differ from the report's.
type Image struct {
	ID       identity.ID `json:"imageId" gorm:"column:image_id;primaryKey"`
	ReportID identity.ID `json:"imageReportId" gorm:"column:report_id;index;not null"`
	MediaRef string      `json:"imageCloudinaryId" gorm:"column:media_ref;size:255;not null"`
	Lat      *float64    `json:"imageLat" gorm:"column:lat"`
	Long     *float64    `json:"imageLong" gorm:"column:long"`
}

func (Image) TableName() string {
	return "image"
}

type ImageInput struct {
	ID       any
	ReportID any
	MediaRef string
	Lat      *float64
	Long     *float64
}

func NewImage(in ImageInput) (*Image, error) {
	id := identity.New()
	if in.ID != nil {
		var err error
		if id, err = validation.Identifier("imageId", in.ID); err != nil {
			return nil, err
		}
	}
	reportID, err := validation.Identifier("imageReportId", in.ReportID)
	if err != nil {
		return nil, err
	}
	ref, err := validation.Text("imageCloudinaryId", in.MediaRef, MaxMediaRefLen)
	if err != nil {
		return nil, err
	}
	var lat, long *float64
	if in.Lat != nil {
		v, err := validation.Latitude("imageLat", *in.Lat)
		if err != nil {
			return nil, err
		}
		lat = &v
	}
	if in.Long != nil {
		v, err := validation.Longitude("imageLong", *in.Long)
		if err != nil {
			return nil, err
		}
		long = &v
	}

	return &Image{
		ID:       id,
		ReportID: reportID,
		MediaRef: ref,
		Lat:      lat,
		Long:     long,
	}, nil
}
