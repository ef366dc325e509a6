package imdb

func (c *Converter) processTitle() (err error) {
	titles, err := c.createVertexFile("title")
	if err != nil {
		return err
	}
	defer closeOutput(&err, titles)

	episodes, err := c.createEdgeFile("title_episodeOfEdge_title")
	if err != nil {
		return err
	}
	defer closeOutput(&err, episodes)

	return c.forEachRecord("title", func(record []string) error {
		id, err := field(record, 0)
		if err != nil {
			return err
		}

		if err := titles.Add(id); err != nil {
			return err
		}

		episodeOf, err := stringField(record, 7)
		if err != nil {
			return err
		}

		if episodeOf != "" {
			episodeOfID, err := field(record, 7)
			if err != nil {
				return err
			}

			if err := episodes.Add(id, episodeOfID); err != nil {
				return err
			}
		}

		return nil
	})
}

func (c *Converter) processAkaTitle() (err error) {
	akaTitles, err := c.createVertexFile("akaTitle")
	if err != nil {
		return err
	}
	defer closeOutput(&err, akaTitles)

	edges, err := c.createEdgeFile("title_akaTitleEdge_akaTitle")
	if err != nil {
		return err
	}
	defer closeOutput(&err, edges)

	return c.forEachRecord("aka_title", func(record []string) error {
		id, err := field(record, 0)
		if err != nil {
			return err
		}

		titleID, err := field(record, 1)
		if err != nil {
			return err
		}

		if err := akaTitles.Add(id); err != nil {
			return err
		}

		if titleID != 0 {
			return edges.Add(titleID, id)
		}

		return nil
	})
}

func (c *Converter) processCompanyName() error {
	return c.copyVertexIDs("company_name", "companyName")
}

func (c *Converter) processMovieCompanies() error {
	return c.copyEdgePairs("movie_companies", "title_movieCompanies_companyName", 1, 2)
}

func (c *Converter) processMovieInfo() error {
	return c.processInfoFile("movie_info", "infoVertex", "title_infoEdge_infoVertex")
}

func (c *Converter) processMovieInfoIdx() error {
	return c.processInfoFile("movie_info_idx", "infoIdxVertex", "title_infoEdge_infoIdxVertex")
}

func (c *Converter) processKeyword() error {
	return c.copyVertexIDs("keyword", "keyword")
}

func (c *Converter) processMovieKeyword() error {
	return c.copyEdgePairs("movie_keyword", "title_keywordEdge_keyword", 1, 2)
}

func (c *Converter) processMovieLink() error {
	return c.copyEdgePairs("movie_link", "title_linkTypeEdge_title", 1, 2)
}

func (c *Converter) processName() error {
	return c.copyVertexIDs("name", "person")
}

func (c *Converter) processAkaName() (err error) {
	akaNames, err := c.createVertexFile("akaName")
	if err != nil {
		return err
	}
	defer closeOutput(&err, akaNames)

	edges, err := c.createEdgeFile("person_akaNameEdge_akaName")
	if err != nil {
		return err
	}
	defer closeOutput(&err, edges)

	return c.forEachRecord("aka_name", func(record []string) error {
		akaNameID, err := field(record, 0)
		if err != nil {
			return err
		}

		personID, err := field(record, 1)
		if err != nil {
			return err
		}

		if err := akaNames.Add(akaNameID); err != nil {
			return err
		}

		return edges.Add(personID, akaNameID)
	})
}

func (c *Converter) processPersonInfo() (err error) {
	infos, err := c.createVertexFile("personInfoVertex")
	if err != nil {
		return err
	}
	defer closeOutput(&err, infos)

	edges, err := c.createEdgeFile("person_personInfoEdge_personInfoVertex")
	if err != nil {
		return err
	}
	defer closeOutput(&err, edges)

	seen := newDedup()

	return c.forEachRecord("person_info", func(record []string) error {
		personID, err := field(record, 1)
		if err != nil {
			return err
		}

		info, err := stringField(record, 3)
		if err != nil {
			return err
		}

		infoID, fresh := seen.get(info)
		if fresh {
			if err := infos.Add(infoID); err != nil {
				return err
			}
		}

		return edges.Add(personID, infoID)
	})
}

func (c *Converter) processCharacter() error {
	return c.copyVertexIDs("char_name", "character")
}

func (c *Converter) processCastInfo() (err error) {
	casts, err := c.createVertexFile("castInfoVertex")
	if err != nil {
		return err
	}
	defer closeOutput(&err, casts)

	personEdges, err := c.createEdgeFile("castInfoVertex_castInfoEdge_person")
	if err != nil {
		return err
	}
	defer closeOutput(&err, personEdges)

	titleEdges, err := c.createEdgeFile("castInfoVertex_castInfoEdge_title")
	if err != nil {
		return err
	}
	defer closeOutput(&err, titleEdges)

	characterEdges, err := c.createEdgeFile("castInfoVertex_castInfoEdge_character")
	if err != nil {
		return err
	}
	defer closeOutput(&err, characterEdges)

	return c.forEachRecord("cast_info", func(record []string) error {
		castInfoID, err := field(record, 0)
		if err != nil {
			return err
		}

		personID, err := field(record, 1)
		if err != nil {
			return err
		}

		movieID, err := field(record, 2)
		if err != nil {
			return err
		}

		if err := casts.Add(castInfoID); err != nil {
			return err
		}

		if err := personEdges.Add(castInfoID, personID); err != nil {
			return err
		}

		if err := titleEdges.Add(castInfoID, movieID); err != nil {
			return err
		}

		charField, err := stringField(record, 3)
		if err != nil {
			return err
		}

		if charField != "" {
			charID, err := field(record, 3)
			if err != nil {
				return err
			}

			return characterEdges.Add(castInfoID, charID)
		}

		return nil
	})
}

func (c *Converter) processCompleteCast() (err error) {
	completeCasts, err := c.createVertexFile("complCastInfoVertex")
	if err != nil {
		return err
	}
	defer closeOutput(&err, completeCasts)

	edges, err := c.createEdgeFile("complCastInfoVertex_complCastInfoEdge_title")
	if err != nil {
		return err
	}
	defer closeOutput(&err, edges)

	return c.forEachRecord("complete_cast", func(record []string) error {
		complCastID, err := field(record, 0)
		if err != nil {
			return err
		}

		movieID, err := field(record, 1)
		if err != nil {
			return err
		}

		if err := completeCasts.Add(complCastID); err != nil {
			return err
		}

		return edges.Add(complCastID, movieID)
	})
}

// copyVertexIDs extracts the primary key column of an entity file into
// a vertex file.
func (c *Converter) copyVertexIDs(inputName, outputName string) (err error) {
	vertices, err := c.createVertexFile(outputName)
	if err != nil {
		return err
	}
	defer closeOutput(&err, vertices)

	return c.forEachRecord(inputName, func(record []string) error {
		id, err := field(record, 0)
		if err != nil {
			return err
		}

		return vertices.Add(id)
	})
}

// copyEdgePairs extracts two foreign key columns of a relationship
// file into an edge file.
func (c *Converter) copyEdgePairs(inputName, outputName string, srcCol, dstCol int) (err error) {
	edges, err := c.createEdgeFile(outputName)
	if err != nil {
		return err
	}
	defer closeOutput(&err, edges)

	return c.forEachRecord(inputName, func(record []string) error {
		src, err := field(record, srcCol)
		if err != nil {
			return err
		}

		dst, err := field(record, dstCol)
		if err != nil {
			return err
		}

		return edges.Add(src, dst)
	})
}

// processInfoFile handles movie_info and movie_info_idx: the info
// string is deduplicated into a synthetic vertex id space and every
// row links the owning title to its info vertex.
func (c *Converter) processInfoFile(inputName, vertexName, edgeName string) (err error) {
	infos, err := c.createVertexFile(vertexName)
	if err != nil {
		return err
	}
	defer closeOutput(&err, infos)

	edges, err := c.createEdgeFile(edgeName)
	if err != nil {
		return err
	}
	defer closeOutput(&err, edges)

	seen := newDedup()

	return c.forEachRecord(inputName, func(record []string) error {
		titleID, err := field(record, 1)
		if err != nil {
			return err
		}

		info, err := stringField(record, 3)
		if err != nil {
			return err
		}

		infoID, fresh := seen.get(info)
		if fresh {
			if err := infos.Add(infoID); err != nil {
				return err
			}
		}

		return edges.Add(titleID, infoID)
	})
}
