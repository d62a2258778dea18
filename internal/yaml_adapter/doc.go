// Package yaml_adapter implements config.Loader for YAML building files.
//
// A building file lists components and optional schema entries:
//
//	components:
//	  - type: Envelope
//	    name: zone_a
//	    arguments:
//	      R_env: [0.1, 0.12]
//	      adjacency: [[1, 0], [0, 1]]
//	    inputs:
//	      solar: SolarGains.south
//	schemas:
//	  BuildingNode: [floor_area, timestep]
package yaml_adapter
