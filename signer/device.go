package signer

// Upstream defaults used when a Device field (or the query parameter that
// overrides it) is absent.
const (
	DefaultAppID          int64 = 1233
	DefaultLicenseID      int64 = 1611921764
	DefaultSDKVersion           = "v05.00.03-ov-android"
	DefaultSDKVersionCode int64 = 167773760

	defaultAppVersion = "37.0.4"
	defaultChannel    = "googleplay"
	defaultOSVersion  = "9"
)

// Device identifies the application install making the request. All
// fields are immutable per call.
type Device struct {
	// DeviceID is the upstream device identifier. When empty, the
	// device_id query parameter is used.
	DeviceID string

	// SecDeviceID is the secure device identifier, possibly empty.
	SecDeviceID string

	// AppID is the application id (aid).
	AppID int64

	// LicenseID is the SDK license id.
	LicenseID int64

	// SDKVersion is the SDK version name, e.g. "v05.00.03-ov-android".
	SDKVersion string

	// SDKVersionCode is the numeric SDK version.
	SDKVersionCode int64

	// AppVersion is the application version name, e.g. "37.0.4". The
	// version_name query parameter takes precedence when present.
	AppVersion string
}

// DefaultDevice returns a Device populated with the upstream default
// identity.
func DefaultDevice() Device {
	return Device{
		AppID:          DefaultAppID,
		LicenseID:      DefaultLicenseID,
		SDKVersion:     DefaultSDKVersion,
		SDKVersionCode: DefaultSDKVersionCode,
		AppVersion:     defaultAppVersion,
	}
}

// withDefaults fills zero fields from the default identity.
func (d Device) withDefaults() Device {
	def := DefaultDevice()
	if d.AppID == 0 {
		d.AppID = def.AppID
	}
	if d.LicenseID == 0 {
		d.LicenseID = def.LicenseID
	}
	if d.SDKVersion == "" {
		d.SDKVersion = def.SDKVersion
	}
	if d.SDKVersionCode == 0 {
		d.SDKVersionCode = def.SDKVersionCode
	}
	if d.AppVersion == "" {
		d.AppVersion = def.AppVersion
	}

	return d
}
