package packets

import (
	"time"

	"github.com/Nixie-Tech-LLC/marquee/internal/model"
)

// @ DEVICES

type CreateDeviceRequest struct {
	Name              string     `json:"name" binding:"required"`
	Status            string     `json:"status" binding:"omitempty,oneof=online offline maintenance"`
	CurrentPlaylistID string     `json:"currentPlaylistId"`
	GroupName         string     `json:"groupName"`
	Location          string     `json:"location"`
	Orientation       string     `json:"orientation" binding:"omitempty,oneof=landscape portrait"`
	Resolution        string     `json:"resolution"`
	Metadata          model.JSON `json:"metadata"`
}

func (r CreateDeviceRequest) ToModel(tenantID string) model.Device {
	return model.Device{
		TenantID:          tenantID,
		Name:              r.Name,
		Status:            model.DeviceStatus(r.Status),
		CurrentPlaylistID: r.CurrentPlaylistID,
		GroupName:         r.GroupName,
		Location:          r.Location,
		Orientation:       r.Orientation,
		Resolution:        r.Resolution,
		Metadata:          r.Metadata,
	}
}

type UpdateDeviceRequest struct {
	Name              *string    `json:"name" binding:"omitempty,min=1"`
	Status            *string    `json:"status" binding:"omitempty,oneof=online offline maintenance"`
	LastSeen          *time.Time `json:"lastSeen"`
	CurrentPlaylistID *string    `json:"currentPlaylistId"`
	GroupName         *string    `json:"groupName"`
	Location          *string    `json:"location"`
	Orientation       *string    `json:"orientation" binding:"omitempty,oneof=landscape portrait"`
	Resolution        *string    `json:"resolution"`
	Metadata          model.JSON `json:"metadata"`
}

func (r UpdateDeviceRequest) ToPatch() model.DevicePatch {
	p := model.DevicePatch{
		Name:              r.Name,
		LastSeen:          r.LastSeen,
		CurrentPlaylistID: r.CurrentPlaylistID,
		GroupName:         r.GroupName,
		Location:          r.Location,
		Orientation:       r.Orientation,
		Resolution:        r.Resolution,
		Metadata:          r.Metadata,
	}
	if r.Status != nil {
		st := model.DeviceStatus(*r.Status)
		p.Status = &st
	}
	return p
}

// @ MEDIA

type CreateMediaItemRequest struct {
	Name         string     `json:"name" binding:"required"`
	Type         string     `json:"type" binding:"required,oneof=image video audio html web pdf rss"`
	URL          string     `json:"url" binding:"required"`
	ThumbnailURL string     `json:"thumbnailUrl"`
	Size         int64      `json:"size" binding:"gte=0"`
	Duration     int        `json:"duration" binding:"gte=0"`
	MimeType     string     `json:"mimeType"`
	Metadata     model.JSON `json:"metadata"`
}

func (r CreateMediaItemRequest) ToModel(tenantID string) model.MediaItem {
	return model.MediaItem{
		TenantID:     tenantID,
		Name:         r.Name,
		Type:         model.MediaType(r.Type),
		URL:          r.URL,
		ThumbnailURL: r.ThumbnailURL,
		Size:         r.Size,
		Duration:     r.Duration,
		MimeType:     r.MimeType,
		Metadata:     r.Metadata,
	}
}

type UpdateMediaItemRequest struct {
	Name         *string    `json:"name" binding:"omitempty,min=1"`
	Type         *string    `json:"type" binding:"omitempty,oneof=image video audio html web pdf rss"`
	URL          *string    `json:"url" binding:"omitempty,min=1"`
	ThumbnailURL *string    `json:"thumbnailUrl"`
	Size         *int64     `json:"size" binding:"omitempty,gte=0"`
	Duration     *int       `json:"duration" binding:"omitempty,gte=0"`
	MimeType     *string    `json:"mimeType"`
	Metadata     model.JSON `json:"metadata"`
}

func (r UpdateMediaItemRequest) ToPatch() model.MediaItemPatch {
	p := model.MediaItemPatch{
		Name:         r.Name,
		URL:          r.URL,
		ThumbnailURL: r.ThumbnailURL,
		Size:         r.Size,
		Duration:     r.Duration,
		MimeType:     r.MimeType,
		Metadata:     r.Metadata,
	}
	if r.Type != nil {
		t := model.MediaType(*r.Type)
		p.Type = &t
	}
	return p
}

// @ LAYOUTS

type ZoneRequest struct {
	Name             string     `json:"name"`
	X                int        `json:"x" binding:"gte=0"`
	Y                int        `json:"y" binding:"gte=0"`
	Width            int        `json:"width" binding:"gte=0"`
	Height           int        `json:"height" binding:"gte=0"`
	ZIndex           int        `json:"zIndex"`
	Type             string     `json:"type" binding:"omitempty,oneof=media playlist widget"`
	MediaID          string     `json:"mediaId"`
	PlaylistID       string     `json:"playlistId"`
	WidgetInstanceID string     `json:"widgetInstanceId"`
	BackgroundColor  string     `json:"backgroundColor"`
	BorderRadius     int        `json:"borderRadius" binding:"gte=0"`
	Settings         model.JSON `json:"settings"`
}

func zonesToModel(in []ZoneRequest) []model.Zone {
	out := make([]model.Zone, len(in))
	for i, z := range in {
		out[i] = model.Zone{
			Name:             z.Name,
			X:                z.X,
			Y:                z.Y,
			Width:            z.Width,
			Height:           z.Height,
			ZIndex:           z.ZIndex,
			Type:             z.Type,
			MediaID:          z.MediaID,
			PlaylistID:       z.PlaylistID,
			WidgetInstanceID: z.WidgetInstanceID,
			BackgroundColor:  z.BackgroundColor,
			BorderRadius:     z.BorderRadius,
			Settings:         z.Settings,
		}
	}
	return out
}

type CreateLayoutRequest struct {
	Name            string        `json:"name" binding:"required"`
	Description     string        `json:"description"`
	Width           int           `json:"width" binding:"gte=0"`
	Height          int           `json:"height" binding:"gte=0"`
	BackgroundColor string        `json:"backgroundColor"`
	Zones           []ZoneRequest `json:"zones" binding:"dive"`
}

func (r CreateLayoutRequest) ToModel(tenantID string) model.Layout {
	l := model.Layout{
		TenantID:        tenantID,
		Name:            r.Name,
		Description:     r.Description,
		Width:           r.Width,
		Height:          r.Height,
		BackgroundColor: r.BackgroundColor,
		Zones:           zonesToModel(r.Zones),
	}
	if l.Width == 0 {
		l.Width = 1920
	}
	if l.Height == 0 {
		l.Height = 1080
	}
	return l
}

type UpdateLayoutRequest struct {
	Name            *string        `json:"name" binding:"omitempty,min=1"`
	Description     *string        `json:"description"`
	Width           *int           `json:"width" binding:"omitempty,gte=0"`
	Height          *int           `json:"height" binding:"omitempty,gte=0"`
	BackgroundColor *string        `json:"backgroundColor"`
	Zones           *[]ZoneRequest `json:"zones" binding:"omitempty,dive"`
}

func (r UpdateLayoutRequest) ToPatch() model.LayoutPatch {
	p := model.LayoutPatch{
		Name:            r.Name,
		Description:     r.Description,
		Width:           r.Width,
		Height:          r.Height,
		BackgroundColor: r.BackgroundColor,
	}
	if r.Zones != nil {
		zones := zonesToModel(*r.Zones)
		p.Zones = &zones
	}
	return p
}

// @ PLAYLISTS

type PlaylistItemRequest struct {
	MediaID            string `json:"mediaId" binding:"required"`
	Duration           int    `json:"duration" binding:"gte=0"` // seconds
	Transition         string `json:"transition"`
	TransitionDuration int    `json:"transitionDuration" binding:"gte=0"`
}

func itemsToModel(in []PlaylistItemRequest) []model.PlaylistItem {
	out := make([]model.PlaylistItem, len(in))
	for i, it := range in {
		out[i] = model.PlaylistItem{
			MediaID:            it.MediaID,
			Duration:           it.Duration,
			Transition:         it.Transition,
			TransitionDuration: it.TransitionDuration,
		}
	}
	return out
}

type CreatePlaylistRequest struct {
	Name        string                `json:"name" binding:"required"`
	Description string                `json:"description"`
	Loop        *bool                 `json:"loop"`
	Shuffle     bool                  `json:"shuffle"`
	Priority    int                   `json:"priority"`
	Items       []PlaylistItemRequest `json:"items" binding:"dive"`
}

func (r CreatePlaylistRequest) ToModel(tenantID string) model.Playlist {
	loop := true
	if r.Loop != nil {
		loop = *r.Loop
	}
	return model.Playlist{
		TenantID:    tenantID,
		Name:        r.Name,
		Description: r.Description,
		Loop:        loop,
		Shuffle:     r.Shuffle,
		Priority:    r.Priority,
		Items:       itemsToModel(r.Items),
	}
}

type UpdatePlaylistRequest struct {
	Name        *string                `json:"name" binding:"omitempty,min=1"`
	Description *string                `json:"description"`
	Loop        *bool                  `json:"loop"`
	Shuffle     *bool                  `json:"shuffle"`
	Priority    *int                   `json:"priority"`
	Items       *[]PlaylistItemRequest `json:"items" binding:"omitempty,dive"`
}

func (r UpdatePlaylistRequest) ToPatch() model.PlaylistPatch {
	p := model.PlaylistPatch{
		Name:        r.Name,
		Description: r.Description,
		Loop:        r.Loop,
		Shuffle:     r.Shuffle,
		Priority:    r.Priority,
	}
	if r.Items != nil {
		items := itemsToModel(*r.Items)
		p.Items = &items
	}
	return p
}

// @ SCHEDULES

type CreateScheduleRequest struct {
	Name       string   `json:"name" binding:"required"`
	PlaylistID string   `json:"playlistId" binding:"required"`
	StartDate  string   `json:"startDate" binding:"omitempty,datetime=2006-01-02"`
	EndDate    string   `json:"endDate" binding:"omitempty,datetime=2006-01-02"`
	StartTime  string   `json:"startTime" binding:"omitempty,datetime=15:04"`
	EndTime    string   `json:"endTime" binding:"omitempty,datetime=15:04"`
	DaysOfWeek []int    `json:"daysOfWeek" binding:"dive,min=0,max=6"`
	Priority   int      `json:"priority"`
	IsActive   *bool    `json:"isActive"`
	DeviceIDs  []string `json:"deviceIds"`
}

func (r CreateScheduleRequest) ToModel(tenantID string) model.Schedule {
	active := true
	if r.IsActive != nil {
		active = *r.IsActive
	}
	return model.Schedule{
		TenantID:   tenantID,
		Name:       r.Name,
		PlaylistID: r.PlaylistID,
		StartDate:  r.StartDate,
		EndDate:    r.EndDate,
		StartTime:  r.StartTime,
		EndTime:    r.EndTime,
		DaysOfWeek: r.DaysOfWeek,
		Priority:   r.Priority,
		IsActive:   active,
		DeviceIDs:  r.DeviceIDs,
	}
}

type UpdateScheduleRequest struct {
	Name       *string   `json:"name" binding:"omitempty,min=1"`
	PlaylistID *string   `json:"playlistId" binding:"omitempty,min=1"`
	StartDate  *string   `json:"startDate" binding:"omitempty,datetime=2006-01-02"`
	EndDate    *string   `json:"endDate" binding:"omitempty,datetime=2006-01-02"`
	StartTime  *string   `json:"startTime" binding:"omitempty,datetime=15:04"`
	EndTime    *string   `json:"endTime" binding:"omitempty,datetime=15:04"`
	DaysOfWeek *[]int    `json:"daysOfWeek" binding:"omitempty,dive,min=0,max=6"`
	Priority   *int      `json:"priority"`
	IsActive   *bool     `json:"isActive"`
	DeviceIDs  *[]string `json:"deviceIds"`
}

func (r UpdateScheduleRequest) ToPatch() model.SchedulePatch {
	return model.SchedulePatch{
		Name:       r.Name,
		PlaylistID: r.PlaylistID,
		StartDate:  r.StartDate,
		EndDate:    r.EndDate,
		StartTime:  r.StartTime,
		EndTime:    r.EndTime,
		DaysOfWeek: r.DaysOfWeek,
		Priority:   r.Priority,
		IsActive:   r.IsActive,
		DeviceIDs:  r.DeviceIDs,
	}
}

// @ WIDGETS

type CreateWidgetInstanceRequest struct {
	TemplateID string     `json:"templateId" binding:"required"`
	Name       string     `json:"name" binding:"required"`
	Config     model.JSON `json:"config"`
}

type UpdateWidgetInstanceRequest struct {
	TemplateID *string    `json:"templateId" binding:"omitempty,min=1"`
	Name       *string    `json:"name" binding:"omitempty,min=1"`
	Config     model.JSON `json:"config"`
}

func (r UpdateWidgetInstanceRequest) ToPatch() model.WidgetInstancePatch {
	return model.WidgetInstancePatch{TemplateID: r.TemplateID, Name: r.Name, Config: r.Config}
}

// @ TENANT & USERS

type UpdateTenantRequest struct {
	Name      *string         `json:"name" binding:"omitempty,min=1"`
	Domain    *string         `json:"domain" binding:"omitempty,fqdn"`
	Subdomain *string         `json:"subdomain" binding:"omitempty,hostname_rfc1123"`
	Branding  *model.Branding `json:"branding"`
	Settings  model.JSON      `json:"settings"`
}

func (r UpdateTenantRequest) ToPatch() model.TenantPatch {
	return model.TenantPatch{
		Name:      r.Name,
		Domain:    r.Domain,
		Subdomain: r.Subdomain,
		Branding:  r.Branding,
		Settings:  r.Settings,
	}
}

type CreateUserRequest struct {
	Email    string  `json:"email" binding:"required,email"`
	Password string  `json:"password" binding:"required,min=8"`
	Name     *string `json:"name"`
	Role     string  `json:"role" binding:"omitempty,oneof=admin editor viewer"`
}

type UpdateUserRequest struct {
	Name   *string `json:"name"`
	Role   *string `json:"role" binding:"omitempty,oneof=admin editor viewer"`
	Status *string `json:"status" binding:"omitempty,oneof=active disabled"`
	Unlock bool    `json:"unlock"`
}

func (r UpdateUserRequest) ToPatch() model.UserPatch {
	p := model.UserPatch{Name: r.Name, ClearLock: r.Unlock}
	if r.Role != nil {
		role := model.Role(*r.Role)
		p.Role = &role
	}
	if r.Status != nil {
		st := model.UserStatus(*r.Status)
		p.Status = &st
	}
	if r.Unlock {
		zero := 0
		p.LoginAttempts = &zero
	}
	return p
}
