// Package huek derives hydrogeological catchment attributes from the HÜK250,
// the German hydrogeological overview map at scale 1:250,000.
//
// For every catchment the base map is clipped to the catchment polygon and
// the area share of each category of six attribute fields is reported in
// percent: permeability (kf_bez), aquifer type (LChar_bez), cavity type
// (HA_bez), consolidation (VF_bez), rock type (GA_bez) and geochemical rock
// type (GC_bez). The categories waterbody and no data appear in every field;
// they are reported once per catchment.
//
// # Basic Usage
//
//	base, catchments, err := huek.LoadLayers(ctx, huek.NewReader(), "huek250_fl.shp", "catchments.geojson")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	table, err := huek.ExtractHydrogeologyAttributes(ctx, base, catchments, "id")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	for _, row := range table.Rows {
//	    fmt.Println(row.ID, row.Values)
//	}
//
// # Vocabulary
//
// The mapping from map labels to output columns is versioned data, embedded
// as YAML and returned by DefaultVocabulary. A different vocabulary can be
// loaded with LoadVocabulary and passed to NewAggregator. Audit lists labels
// of a base map that a vocabulary does not know:
//
//	unknown, err := huek.DefaultVocabulary().Audit(base)
//
// # Consistency
//
// Every attribute's percentages, shared categories included, must add up to
// 100 within DefaultTolerance; otherwise Extract fails with
// *ConsistencyError. All six attributes must report the identical
// waterbody and no data share, otherwise MergeRows fails with
// *CollapseMismatchError. Neither is recoverable.
//
// A catchment that does not overlap the base map has no defined
// percentages. It fails the run with *DegenerateCatchmentError unless
// AggregateOptions.Degenerate is DegenerateExclude.
//
// # Reference Systems
//
// Catchments are reprojected into the CRS of the base map before clipping.
// Geographic WGS 84 and ETRS89 and their UTM projections are supported; see
// CRS.
package huek
