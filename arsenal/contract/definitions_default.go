package contract

// DefaultRegistry returns the built-in arsenal. The designer catalog may
// override or extend these entries; the simulation itself only depends on the
// stat blocks, never on the specific ids.
func DefaultRegistry() Registry {
	return Registry{
		{
			ID:          "baby-missile",
			Name:        "Baby Missile",
			Kind:        KindStandard,
			Damage:      15,
			BlastRadius: 20,
			Cost:        40,
		},
		{
			ID:          "missile",
			Name:        "Missile",
			Kind:        KindStandard,
			Damage:      30,
			BlastRadius: 35,
			Cost:        150,
		},
		{
			ID:          "heavy-missile",
			Name:        "Heavy Missile",
			Kind:        KindStandard,
			Damage:      45,
			BlastRadius: 50,
			Cost:        400,
		},
		{
			ID:          "mirv",
			Name:        "MIRV",
			Kind:        KindSplitting,
			Damage:      25,
			BlastRadius: 30,
			Split:       &SplitSpec{Count: 3, AngleDeg: 25},
			Cost:        900,
		},
		{
			ID:          "deaths-head",
			Name:        "Death's Head",
			Kind:        KindSplitting,
			Damage:      35,
			BlastRadius: 40,
			Split:       &SplitSpec{Count: 5, AngleDeg: 40},
			Cost:        2500,
		},
		{
			ID:          "roller",
			Name:        "Roller",
			Kind:        KindRolling,
			Damage:      30,
			BlastRadius: 35,
			Roll:        &RollSpec{TimeoutMillis: 3000},
			Cost:        600,
		},
		{
			ID:          "heavy-roller",
			Name:        "Heavy Roller",
			Kind:        KindRolling,
			Damage:      45,
			BlastRadius: 50,
			Roll:        &RollSpec{TimeoutMillis: 4000},
			Cost:        1400,
		},
		{
			ID:          "digger",
			Name:        "Digger",
			Kind:        KindDigging,
			Damage:      25,
			BlastRadius: 30,
			Tunnel:      &TunnelSpec{Distance: 80, Radius: 10},
			Cost:        500,
		},
		{
			ID:          "heavy-digger",
			Name:        "Heavy Digger",
			Kind:        KindDigging,
			Damage:      40,
			BlastRadius: 45,
			Tunnel:      &TunnelSpec{Distance: 140, Radius: 14},
			Cost:        1200,
		},
		{
			ID:                  "nuke",
			Name:                "Nuke",
			Kind:                KindNuclear,
			Damage:              80,
			BlastRadius:         90,
			DirectHitMultiplier: 1.25,
			Visual:              VisualFlags{ScreenShake: true, Flash: true, MushroomCloud: true},
			Cost:                5000,
		},
		{
			ID:          "dirt-ball",
			Name:        "Dirt Ball",
			Kind:        KindStandard,
			Damage:      0,
			BlastRadius: 45,
			TerrainOp:   TerrainOpDirt,
			Cost:        250,
		},
		{
			ID:          "napalm",
			Name:        "Napalm",
			Kind:        KindStandard,
			Damage:      35,
			BlastRadius: 45,
			TerrainOp:   TerrainOpBurn,
			Visual:      VisualFlags{Flash: true},
			Cost:        800,
		},
	}
}
