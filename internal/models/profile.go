package models

// ProfileUpdate is the fixed set of profile fields a user may change. A
// nil field was not supplied and is left untouched; a pointer to a zero
// value clears the field. This keeps "not sent" and "clear" distinct.
type ProfileUpdate struct {
	Name            *string `json:"name"`
	Bio             *string `json:"bio"`
	ProfilePicture  *string `json:"profile_picture"`
	ExperienceLevel *string `json:"experience_level"`
	AvgDistance     *int    `json:"avg_distance"`
	PreferredZone   *string `json:"preferred_zone"`
	Location        *string `json:"location"`
	Age             *int    `json:"age"`
}

// Empty reports whether no field was supplied.
func (p *ProfileUpdate) Empty() bool {
	return p.Name == nil && p.Bio == nil && p.ProfilePicture == nil &&
		p.ExperienceLevel == nil && p.AvgDistance == nil &&
		p.PreferredZone == nil && p.Location == nil && p.Age == nil
}

// ApplyTo overlays the supplied fields onto user. Used to recompute the
// derived profile_completed flag before persisting the update.
func (p *ProfileUpdate) ApplyTo(user User) User {
	if p.Name != nil {
		user.Name = *p.Name
	}
	if p.Bio != nil {
		user.Bio = p.Bio
	}
	if p.ProfilePicture != nil {
		user.ProfilePicture = p.ProfilePicture
	}
	if p.ExperienceLevel != nil {
		user.ExperienceLevel = p.ExperienceLevel
	}
	if p.AvgDistance != nil {
		user.AvgDistance = p.AvgDistance
	}
	if p.PreferredZone != nil {
		user.PreferredZone = p.PreferredZone
	}
	if p.Location != nil {
		user.Location = p.Location
	}
	if p.Age != nil {
		user.Age = p.Age
	}
	return user
}
