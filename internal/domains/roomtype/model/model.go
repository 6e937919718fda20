package model

import (
	"skynest/shared/model"
)

const (
	TableName  = "room_types"
	EntityName = "room_type"

	FieldID          = "id"
	FieldBranchID    = "branch_id"
	FieldName        = "name"
	FieldDescription = "description"
	FieldBasePrice   = "base_price"
	FieldCapacity    = "capacity"
	FieldActive      = "active"
)

type RoomType struct {
	ID          string  `db:"id"`
	BranchID    string  `db:"branch_id"`
	Name        string  `db:"name"`
	Description string  `db:"description"`
	BasePrice   float64 `db:"base_price"`
	Capacity    int     `db:"capacity"`
	Active      bool    `db:"active"`
	model.Metadata
}

const (
	AmenityTableName  = "amenities"
	AmenityEntityName = "amenity"

	AmenityFieldID   = "id"
	AmenityFieldName = "name"
	AmenityFieldIcon = "icon"
)

type Amenity struct {
	ID   string `db:"id"`
	Name string `db:"name"`
	Icon string `db:"icon"`
	model.Metadata
}

const (
	RoomTypeAmenityTableName  = "room_type_amenities"
	RoomTypeAmenityEntityName = "room_type_amenity"

	RoomTypeAmenityFieldRoomTypeID = "room_type_id"
	RoomTypeAmenityFieldAmenityID  = "amenity_id"
)

type RoomTypeAmenity struct {
	RoomTypeID string `db:"room_type_id"`
	AmenityID  string `db:"amenity_id"`
}

const (
	ImageTableName  = "room_type_images"
	ImageEntityName = "room_type_image"

	ImageFieldID         = "id"
	ImageFieldRoomTypeID = "room_type_id"
	ImageFieldURL        = "url"
	ImageFieldSortOrder  = "sort_order"
)

// Image rows keep display order via sort_order; listings always sort ascending.
type Image struct {
	ID         string `db:"id"`
	RoomTypeID string `db:"room_type_id"`
	URL        string `db:"url"`
	SortOrder  int    `db:"sort_order"`
	model.Metadata
}
