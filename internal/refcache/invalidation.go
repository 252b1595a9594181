package refcache

// Invalidation helpers drop every collection that embeds the changed table.

func (c *Cache) OnSectorChanged() {
	c.Invalidate(KeySectors, KeyPersonnel)
}

func (c *Cache) OnShiftChanged() {
	c.Invalidate(KeyShifts, KeyPersonnel)
}

func (c *Cache) OnPersonnelChanged() {
	c.Invalidate(KeyPersonnel, KeySupervisors)
}

func (c *Cache) OnVehicleChanged() {
	c.Invalidate(KeyVehicles)
}

func (c *Cache) OnBoothChanged() {
	c.Invalidate(KeyBooths)
}

func (c *Cache) ClearAll() {
	c.Clear()
}

// ForTable applies the helper matching a database table name. Tables with
// no cached collection are ignored.
func (c *Cache) ForTable(table string) {
	switch table {
	case "sector":
		c.OnSectorChanged()
	case "turno":
		c.OnShiftChanged()
	case "personal":
		c.OnPersonnelChanged()
	case "vehiculo":
		c.OnVehicleChanged()
	case "cabina":
		c.OnBoothChanged()
	}
}
