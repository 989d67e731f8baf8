package atelier

// Default rows inserted into empty collections at startup, so the public
// site is never blank before an admin populates it. Each seed checks that
// its collection is empty; existing databases are never re-seeded.

var defaultGallery = []GalleryItem{
	{Title: "Royal Jalabiya", Image: "/siteimages/royal-jalabiya.webp", Order: 1},
	{Title: "Elegant Detail", Image: "/siteimages/elegant-detail.webp", Order: 2},
	{Title: "Measurement Taking", Image: "/siteimages/measurement-taking.webp", Order: 3},
	{Title: "Quality Fabrics", Image: "/siteimages/quality-fabrics.webp", Order: 4},
	{Title: "Sewing Process", Image: "/siteimages/sewing-process.webp", Order: 5},
	{Title: "Fashion Design", Image: "/siteimages/fashion-design.webp", Order: 6},
	{Title: "Custom Fitting", Image: "/siteimages/custom-fitting.webp", Order: 7},
	{Title: "Final Touches", Image: "/siteimages/final-touches.webp", Order: 8},
}

var defaultServices = []Service{
	{Title: "أزياء الحج والعمرة", Image: "/siteimages/royal-jalabiya.webp", Order: 1},
	{Title: "تعديل الملابس", Image: "/siteimages/elegant-detail.webp", Order: 2},
	{Title: "خياطة الجلابيات", Image: "/siteimages/measurement-taking.webp", Order: 3},
	{Title: "خياطة نسائية شاملة", Image: "/siteimages/sewing-process.webp", Order: 4},
}

var defaultSiteContent = []SiteContentEntry{
	{Key: "hero_bg", Value: "/siteimages/quality-fabrics.webp", Label: "Hero background image", Type: "image"},
	{Key: "hero_main", Value: "/siteimages/royal-jalabiya.webp", Label: "Hero main image", Type: "image"},
	{Key: "about_image", Value: "/siteimages/sewing-process.webp", Label: "About section image", Type: "image"},
}

func (s *Store) seedDefaults() error {
	if err := s.seedGallery(); err != nil {
		return err
	}
	if err := s.seedServices(); err != nil {
		return err
	}
	return s.seedSiteContent()
}

func (s *Store) seedGallery() error {
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM gallery_items`).Scan(&n); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	for _, it := range defaultGallery {
		item := it
		if err := s.InsertGalleryItem(&item); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) seedServices() error {
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM services`).Scan(&n); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	for _, svc := range defaultServices {
		service := svc
		if err := s.InsertService(&service); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) seedSiteContent() error {
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM site_content`).Scan(&n); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	for _, e := range defaultSiteContent {
		entry := e
		if err := s.UpsertSiteContent(&entry); err != nil {
			return err
		}
	}
	return nil
}
