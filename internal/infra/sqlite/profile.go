package sqlite

// profileStateKey is the app_state row holding the gamification profile as a
// single JSON blob. The engine owns the schema of the blob; storage treats it
// as opaque.
const profileStateKey = "gamification_profile"

// LoadProfile returns the stored profile blob, or nil when none exists yet.
func (d *DB) LoadProfile() ([]byte, error) {
	value, err := d.GetAppState(profileStateKey)
	if err != nil {
		return nil, err
	}
	if value == "" {
		return nil, nil
	}
	return []byte(value), nil
}

// SaveProfile overwrites the stored profile blob.
func (d *DB) SaveProfile(raw []byte) error {
	return d.SetAppState(profileStateKey, string(raw))
}
