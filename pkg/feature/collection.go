package feature

import (
	"github.com/Faultbox/geomesh/pkg/geom"
	"github.com/Faultbox/geomesh/pkg/proj"
)

// Options configures a Collection.
type Options struct {
	// CRS is the storage/output coordinate reference system.
	CRS string
	// SourceCRS is the system incoming coordinates are expressed in.
	// Defaults to CRS.
	SourceCRS string
	// Structure is the vertex width: 2 for planar data, 3 when elevation
	// is tracked. Defaults to 2.
	Structure int
	// MergeFeatures shares one feature per kind instead of allocating one
	// per input record.
	MergeFeatures bool
	// BuildExtent enables extent accumulation on geometries, features and
	// the collection.
	BuildExtent bool
	// ForcedExtentCRS names the system extents are reported in when it
	// differs from CRS. Informational.
	ForcedExtentCRS string
	// FilterExtent discards any geometry whose first point falls outside
	// it. Expressed in SourceCRS.
	FilterExtent *geom.Extent
	// OverrideAltitudeToZero zeroes input elevations before the style
	// hooks and projection run.
	OverrideAltitudeToZero bool
	// Style supplies the per-feature styling hooks.
	Style *Style
	// Projector converts SourceCRS coordinates to CRS. Defaults to
	// proj.Default.
	Projector proj.Projector
}

// Collection is the top-level container of features sharing one CRS and
// one local coordinate frame. It is mutated only during population and
// must be treated as read-only once handed to the tessellation engine.
// A Collection is not safe for concurrent population.
type Collection struct {
	CRS           string
	Size          int
	MergeFeatures bool
	Features      []*Feature
	Extent        *geom.Extent
	Altitude      geom.AltitudeRange

	opts      Options
	frame     *LocalFrame
	projector proj.Projector
}

// NewCollection creates an empty collection for the given options.
func NewCollection(opts Options) *Collection {
	if opts.Structure == 0 {
		opts.Structure = 2
	}
	if opts.SourceCRS == "" {
		opts.SourceCRS = opts.CRS
	}
	if opts.Projector == nil {
		opts.Projector = proj.Default{}
	}
	c := &Collection{
		CRS:           opts.CRS,
		Size:          opts.Structure,
		MergeFeatures: opts.MergeFeatures,
		Altitude:      geom.NewAltitudeRange(),
		opts:          opts,
		frame:         newLocalFrame(opts.Structure),
		projector:     opts.Projector,
	}
	if opts.BuildExtent {
		e := geom.NewExtent()
		c.Extent = &e
	}
	return c
}

// Frame returns the collection's local coordinate frame.
func (c *Collection) Frame() *LocalFrame {
	return c.frame
}

// FeatureByKind returns a feature of the given kind following the merge
// policy: with MergeFeatures the first existing match is reused,
// otherwise a new feature is always allocated.
func (c *Collection) FeatureByKind(kind Kind) (*Feature, error) {
	if c.MergeFeatures {
		for _, f := range c.Features {
			if f.Kind == kind && !f.frozen {
				return f, nil
			}
		}
	}
	f, err := newFeature(c, kind, "")
	if err != nil {
		return nil, err
	}
	c.Features = append(c.Features, f)
	return f, nil
}

// FeatureByID is FeatureByKind with an identifier in the merge
// predicate.
func (c *Collection) FeatureByID(id string, kind Kind) (*Feature, error) {
	if c.MergeFeatures {
		for _, f := range c.Features {
			if f.Kind == kind && f.ID == id && !f.frozen {
				return f, nil
			}
		}
	}
	f, err := newFeature(c, kind, id)
	if err != nil {
		return nil, err
	}
	c.Features = append(c.Features, f)
	return f, nil
}

// NewFeatureByReference creates a feature aliasing src's vertex and
// normal buffers and geometry list, with independent style and extent
// fields. The alias is frozen at creation: the snapshot uses full slice
// expressions, so growing src afterwards can never surface in the alias.
func (c *Collection) NewFeatureByReference(src *Feature) *Feature {
	f := &Feature{
		Kind:       src.Kind,
		Size:       src.Size,
		CRS:        src.CRS,
		ID:         src.ID,
		Vertices:   src.Vertices[0:len(src.Vertices):len(src.Vertices)],
		Geometries: src.Geometries[0:len(src.Geometries):len(src.Geometries)],
		Altitude:   src.Altitude,
		Style:      src.Style,
		collection: c,
		frozen:     true,
	}
	if src.Normals != nil {
		f.Normals = src.Normals[0:len(src.Normals):len(src.Normals)]
	}
	if src.Extent != nil {
		e := *src.Extent
		f.Extent = &e
	}
	c.Features = append(c.Features, f)
	return f
}

// UpdateExtent unions ext into the collection extent, or recomputes the
// rollup from every owned feature when ext is nil. The altitude range is
// rolled up across all 3D features either way.
func (c *Collection) UpdateExtent(ext *geom.Extent) {
	if c.Extent != nil {
		if ext != nil {
			c.Extent.Union(*ext)
		} else {
			for _, f := range c.Features {
				if f.Extent != nil {
					c.Extent.Union(*f.Extent)
				}
			}
		}
	}
	for _, f := range c.Features {
		if f.Size == 3 {
			c.Altitude.Union(f.Altitude)
		}
	}
}

// RemoveEmptyFeatures drops features holding zero geometries.
func (c *Collection) RemoveEmptyFeatures() {
	kept := c.Features[:0]
	for _, f := range c.Features {
		if len(f.Geometries) > 0 {
			kept = append(kept, f)
		}
	}
	c.Features = kept
}

// InsideFilter reports whether a source-CRS coordinate passes the
// configured filter extent. With no filter everything passes. Callers
// must check the first point of a geometry before StartSubGeometry,
// since buffer extension cannot be cheaply undone.
func (c *Collection) InsideFilter(co geom.Coordinate) bool {
	if c.opts.FilterExtent == nil {
		return true
	}
	return c.opts.FilterExtent.ContainsXY(co.X, co.Y)
}
