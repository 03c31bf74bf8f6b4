package worldgen

import "fmt"

// invariantCheck is a grid-wide consistency predicate and the pipeline
// stage index from which it must hold.
type invariantCheck struct {
	name     string
	minStage int
	check    func(*Grid, GenConfig) error
}

var invariantChecks = []invariantCheck{
	{"mountain_elevation", 0, checkMountainElevation},
	{"tundra_on_land", 3, checkNoLandTundra},
	{"coast_has_land", 6, checkCoastNeighbors},
	{"feature_terrain", 7, checkFeatureRestrictions},
	{"cordillera_neighbors", 9, checkCordilleraNeighbors},
}

// CheckInvariants verifies every end-of-generation invariant and
// returns the first violation found.
func CheckInvariants(g *Grid, cfg GenConfig) error {
	return checkStageInvariants(g, cfg, len(pipeline)-1)
}

func checkStageInvariants(g *Grid, cfg GenConfig, stageIdx int) error {
	for _, ic := range invariantChecks {
		if stageIdx < ic.minStage {
			continue
		}
		if err := ic.check(g, cfg); err != nil {
			return fmt.Errorf("%s: %w", ic.name, err)
		}
	}
	return nil
}

func checkMountainElevation(g *Grid, cfg GenConfig) error {
	for i := 0; i < g.Len(); i++ {
		t := g.TileAt(i)
		if t.Terrain == TerrainMountainRange && t.Elevation < cfg.MountainMinElevation {
			return fmt.Errorf("tile %s: mountain_range with elevation %d", t.Coord.Key(), t.Elevation)
		}
	}
	return nil
}

func checkNoLandTundra(g *Grid, _ GenConfig) error {
	for i := 0; i < g.Len(); i++ {
		t := g.TileAt(i)
		if t.Continent != "" && t.Terrain == TerrainTundra {
			return fmt.Errorf("tile %s: tundra on landmass %q", t.Coord.Key(), t.Continent)
		}
	}
	return nil
}

func checkCoastNeighbors(g *Grid, _ GenConfig) error {
	for i := 0; i < g.Len(); i++ {
		t := g.TileAt(i)
		if t.Terrain == TerrainCoast && !g.hasLandNeighbor(t.Coord) {
			return fmt.Errorf("tile %s: coast with no land neighbor", t.Coord.Key())
		}
	}
	return nil
}

func checkFeatureRestrictions(g *Grid, cfg GenConfig) error {
	for i := 0; i < g.Len(); i++ {
		t := g.TileAt(i)
		switch {
		case t.Features.Has(FeatureJungle) && (t.Terrain != TerrainHills || t.Continent != cfg.JungleContinent):
			return fmt.Errorf("tile %s: jungle on %s/%q", t.Coord.Key(), t.Terrain, t.Continent)
		case t.Features.Has(FeatureForest) && (t.Terrain != TerrainHills || t.Continent != cfg.ForestContinent):
			return fmt.Errorf("tile %s: forest on %s/%q", t.Coord.Key(), t.Terrain, t.Continent)
		case t.Features.Has(FeatureBorealForest) && t.Terrain != TerrainTundra:
			return fmt.Errorf("tile %s: boreal_forest on %s", t.Coord.Key(), t.Terrain)
		case t.Features.Has(FeatureOasis) && t.Terrain != TerrainDesert:
			return fmt.Errorf("tile %s: oasis on %s", t.Coord.Key(), t.Terrain)
		case t.Features.Has(FeatureVolcano) && t.Terrain != TerrainMountainRange:
			return fmt.Errorf("tile %s: volcano feature on %s", t.Coord.Key(), t.Terrain)
		}
	}
	return nil
}

func checkCordilleraNeighbors(g *Grid, _ GenConfig) error {
	var nbuf []*Tile
	for i := 0; i < g.Len(); i++ {
		m := g.TileAt(i)
		if m.Terrain != TerrainMountainRange {
			continue
		}
		nbuf = g.Neighbors(m.Coord, nbuf[:0])
		for _, n := range nbuf {
			if n.Terrain == TerrainMountainRange || n.Terrain.IsWater() || n.Terrain == TerrainTundra {
				continue
			}
			if n.Terrain != TerrainHills && !n.Features.Has(FeatureMountain) {
				return fmt.Errorf("tile %s: %s beside mountain at %s", n.Coord.Key(), n.Terrain, m.Coord.Key())
			}
			if n.Elevation >= m.Elevation {
				return fmt.Errorf("tile %s: elevation %d not below mountain %d at %s",
					n.Coord.Key(), n.Elevation, m.Elevation, m.Coord.Key())
			}
		}
	}
	return nil
}
