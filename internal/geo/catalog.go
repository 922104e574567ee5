package geo

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// catalogFile is the TOML shape of a zone catalog file:
//
//	[[zones]]
//	id = "AIRPORT_T4"
//	name = "Aeropuerto T4"
//
//	[[zones.rules]]
//	type = "CIRCLE"
//	[zones.rules.circle]
//	radius_meters = 1500.0
//	[zones.rules.circle.center]
//	latitude = 40.4936
//	longitude = -3.5668
type catalogFile struct {
	Zones []Zone `toml:"zones"`
}

// LoadCatalog reads a zone catalog from a TOML file, preserving file order.
// The file is purely declarative; nothing in it is evaluated at load time.
func LoadCatalog(path string) ([]Zone, error) {
	var file catalogFile
	meta, err := toml.DecodeFile(path, &file)
	if err != nil {
		return nil, fmt.Errorf("geo.LoadCatalog: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("geo.LoadCatalog: unknown keys in %s: %v", path, undecoded)
	}

	for _, zone := range file.Zones {
		if zone.ID == "" {
			return nil, fmt.Errorf("geo.LoadCatalog: zone without id in %s", path)
		}
	}

	return file.Zones, nil
}
