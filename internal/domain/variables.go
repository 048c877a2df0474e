package domain

import "sort"

// Standard names used in result sets.
const (
	Time                = "time"
	SigmaCoordinate     = "ocean_sigma_coordinate"
	SeaFloorDepth       = "sea_floor_depth_below_sea_level"
	SeaSurfaceHeight    = "sea_surface_height_above_sea_level"
	XWind               = "x_wind"
	YWind               = "y_wind"
	AirPressure         = "air_pressure_at_sea_level"
	XSeaWaterVelocity   = "x_sea_water_velocity"
	YSeaWaterVelocity   = "y_sea_water_velocity"
	UpwardVelocity      = "upward_sea_water_velocity"
	SeaWaterSalinity    = "sea_water_salinity"
	SeaWaterTemperature = "sea_water_temperature"
	LandBinaryMask      = "land_binary_mask"
	UDirectionMask      = "U1_direction_mask"
	VDirectionMask      = "V1_direction_mask"
	BottomDragCoeff     = "Bottom_Drag_Coefficient"
	StokesDriftX        = "sea_surface_wave_stokes_drift_x_velocity"
	StokesDriftY        = "sea_surface_wave_stokes_drift_y_velocity"
	SeaIceXVelocity     = "sea_ice_x_velocity"
	SeaIceYVelocity     = "sea_ice_y_velocity"
	Longitude           = "lon"
	Latitude            = "lat"
	CoordX              = "x"
	CoordY              = "y"
	CoordZ              = "z"
)

// ECOM native names the reader needs directly.
const (
	SeaFractionVarName = "FSM"
	SigmaVarName       = "sigma"
	DepthVarName       = "depth"
	TimeVarName        = "time"
	LongitudeVarName   = "lon"
	LatitudeVarName    = "lat"
)

// SentinelThreshold is the magnitude above which regridded values are
// considered undefined.
const SentinelThreshold = 1e9

// FillValue is written for target depths outside a water column.
const FillValue = 1e20

// ECOMVariables maps ECOM native variable names to standard names.
var ECOMVariables = map[string]string{
	"time":  Time,
	"sigma": SigmaCoordinate,
	"depth": SeaFloorDepth,
	"elev":  SeaSurfaceHeight,
	"wu":    XWind,
	"wv":    YWind,
	"patm":  AirPressure,
	"u":     XSeaWaterVelocity,
	"v":     YSeaWaterVelocity,
	"w":     UpwardVelocity,
	"salt":  SeaWaterSalinity,
	"temp":  SeaWaterTemperature,
	"FSM":   LandBinaryMask,
	"DUM":   UDirectionMask,
	"DVM":   VDirectionMask,
	"cbc":   BottomDragCoeff,
	"lon":   Longitude,
	"lat":   Latitude,
}

// NativeName returns the ECOM name for a standard name.
func NativeName(standard string) (string, bool) {
	for native, std := range ECOMVariables {
		if std == standard {
			return native, true
		}
	}
	return "", false
}

// NativeNames returns the mapped ECOM names in sorted order.
func NativeNames() []string {
	names := make([]string, 0, len(ECOMVariables))
	for n := range ECOMVariables {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// VectorPairs lists x/y component pairs that must be read together.
var VectorPairs = [][2]string{
	{XWind, YWind},
	{XSeaWaterVelocity, YSeaWaterVelocity},
	{StokesDriftX, StokesDriftY},
	{SeaIceXVelocity, SeaIceYVelocity},
}

// CompleteVectorPairs returns requested with any missing vector partner
// appended. The input order is preserved and duplicates are dropped.
func CompleteVectorPairs(requested []string) []string {
	out := make([]string, 0, len(requested)+2)
	seen := make(map[string]bool, len(requested)+2)
	add := func(name string) {
		if !seen[name] {
			seen[name] = true
			out = append(out, name)
		}
	}
	for _, name := range requested {
		add(name)
	}
	for _, pair := range VectorPairs {
		if seen[pair[0]] {
			add(pair[1])
		}
		if seen[pair[1]] {
			add(pair[0])
		}
	}
	return out
}

// VarKind tags a variable by how it is laid out in the model output.
type VarKind int

const (
	// Static2D is a [y, x] field such as bathymetry.
	Static2D VarKind = iota
	// TimeVarying3D is a [time, y, x] field such as surface elevation.
	TimeVarying3D
	// TimeDepth4D is a [time, sigma, y, x] field such as velocity.
	TimeDepth4D
)

// KindForRank maps an array rank to its VarKind.
func KindForRank(rank int) (VarKind, bool) {
	switch rank {
	case 2:
		return Static2D, true
	case 3:
		return TimeVarying3D, true
	case 4:
		return TimeDepth4D, true
	default:
		return 0, false
	}
}

func (k VarKind) String() string {
	switch k {
	case Static2D:
		return "static2d"
	case TimeVarying3D:
		return "time3d"
	case TimeDepth4D:
		return "timedepth4d"
	default:
		return "unknown"
	}
}

// IsNaNSanitized reports whether NaN values of the variable are replaced
// before the velocity/wind pairs are returned.
func IsNaNSanitized(name string) bool {
	switch name {
	case XSeaWaterVelocity, YSeaWaterVelocity, UpwardVelocity, XWind, YWind:
		return true
	}
	return false
}
