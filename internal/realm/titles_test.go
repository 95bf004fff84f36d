package realm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssignTitles_OneTitlePerEntity(t *testing.T) {
	p := DefaultParams(9527)
	data := mustGenerate(t, p)

	require.Len(t, data.Titles, p.Counties+p.Duchies+p.Kingdoms)

	perRank := make(map[Rank]map[int]bool)
	for _, rank := range []Rank{RankCounty, RankDuchy, RankKingdom} {
		perRank[rank] = make(map[int]bool)
	}
	for _, title := range data.Titles {
		require.False(t, perRank[title.Rank][title.EntityID], "duplicate %s", title.ID)
		perRank[title.Rank][title.EntityID] = true
		assert.Equal(t, MakeTitleID(title.Rank, title.EntityID), title.ID)
	}
	assert.Len(t, perRank[RankCounty], p.Counties)
	assert.Len(t, perRank[RankDuchy], p.Duchies)
	assert.Len(t, perRank[RankKingdom], p.Kingdoms)
}

func TestAssignTitles_BidirectionalHolderConsistency(t *testing.T) {
	data := mustGenerate(t, DefaultParams(9527))

	byID := make(map[TitleID]*Title)
	for i := range data.Titles {
		byID[data.Titles[i].ID] = &data.Titles[i]
	}

	// Every title's holder lists the title.
	for _, title := range data.Titles {
		index, err := title.HolderCharacterID.Index()
		require.NoError(t, err)
		require.Less(t, index, len(data.Characters))
		assert.Contains(t, data.Characters[index].HeldTitleIDs, title.ID)
	}

	// Every held title points back at its holder, and no title is listed
	// twice across characters.
	claimed := make(map[TitleID]bool)
	for _, c := range data.Characters {
		for _, id := range c.HeldTitleIDs {
			require.False(t, claimed[id], "title %s held twice", id)
			claimed[id] = true
			require.Contains(t, byID, id)
			assert.Equal(t, c.ID, byID[id].HolderCharacterID)
		}
	}
	assert.Len(t, claimed, len(data.Titles))
}

func TestAssignTitles_OneCharacterPerCounty(t *testing.T) {
	p := DefaultParams(42)
	data := mustGenerate(t, p)
	require.Len(t, data.Characters, p.Counties)

	// The county titles form a bijection onto the characters.
	holders := make(map[CharacterID]bool)
	for _, title := range data.Titles {
		if title.Rank != RankCounty {
			continue
		}
		assert.False(t, holders[title.HolderCharacterID])
		holders[title.HolderCharacterID] = true
	}
	assert.Len(t, holders, p.Counties)
}

func TestAssignTitles_PrimaryIsBestHeldTitle(t *testing.T) {
	data := mustGenerate(t, DefaultParams(9527))

	for _, c := range data.Characters {
		require.NotEmpty(t, c.HeldTitleIDs)
		assert.Contains(t, c.HeldTitleIDs, c.PrimaryTitleID)

		// Recompute: highest rank weight, ties broken by lowest entity id.
		bestRank, bestEntity, err := c.HeldTitleIDs[0].Parse()
		require.NoError(t, err)
		best := c.HeldTitleIDs[0]
		for _, id := range c.HeldTitleIDs[1:] {
			rank, entity, err := id.Parse()
			require.NoError(t, err)
			if rank.Weight() > bestRank.Weight() ||
				(rank.Weight() == bestRank.Weight() && entity < bestEntity) {
				best, bestRank, bestEntity = id, rank, entity
			}
		}
		assert.Equal(t, best, c.PrimaryTitleID, "character %s", c.ID)
	}
}

func TestAssignTitles_UpperHoldersRuleWithin(t *testing.T) {
	data := mustGenerate(t, DefaultParams(7))
	df := &data.Modes.DeFacto

	countyOf := make(map[CharacterID][]int)
	for _, title := range data.Titles {
		if title.Rank == RankCounty {
			countyOf[title.HolderCharacterID] = append(countyOf[title.HolderCharacterID], title.EntityID)
		}
	}

	// A duchy's holder must rule at least one county inside it under de
	// facto control.
	for _, title := range data.Titles {
		if title.Rank != RankDuchy {
			continue
		}
		found := false
		for _, county := range countyOf[title.HolderCharacterID] {
			if df.CountyToDuchy[county] == title.EntityID {
				found = true
				break
			}
		}
		assert.True(t, found, "%s holder rules no county inside it", title.ID)
	}
}

func TestTitleParents_MirrorHierarchy(t *testing.T) {
	data := mustGenerate(t, DefaultParams(9527))
	dj, df := &data.Modes.DeJure, &data.Modes.DeFacto

	for _, title := range data.Titles {
		switch title.Rank {
		case RankKingdom:
			assert.Nil(t, title.DeJureParentTitleID)
			assert.Nil(t, title.DeFactoParentTitleID)
		case RankDuchy:
			require.NotNil(t, title.DeJureParentTitleID)
			require.NotNil(t, title.DeFactoParentTitleID)
			assert.Equal(t, MakeTitleID(RankKingdom, dj.DuchyToKingdom[title.EntityID]), *title.DeJureParentTitleID)
			assert.Equal(t, MakeTitleID(RankKingdom, df.DuchyToKingdom[title.EntityID]), *title.DeFactoParentTitleID)
		case RankCounty:
			require.NotNil(t, title.DeJureParentTitleID)
			require.NotNil(t, title.DeFactoParentTitleID)
			assert.Equal(t, MakeTitleID(RankDuchy, dj.CountyToDuchy[title.EntityID]), *title.DeJureParentTitleID)
			assert.Equal(t, MakeTitleID(RankDuchy, df.CountyToDuchy[title.EntityID]), *title.DeFactoParentTitleID)
		}
	}
}

func TestTitleID_RoundTrip(t *testing.T) {
	id := MakeTitleID(RankDuchy, 12)
	assert.Equal(t, TitleID("duchy:12"), id)

	rank, entity, err := id.Parse()
	require.NoError(t, err)
	assert.Equal(t, RankDuchy, rank)
	assert.Equal(t, 12, entity)

	_, _, err = TitleID("duchy").Parse()
	assert.Error(t, err)
	_, _, err = TitleID("barony:3").Parse()
	assert.Error(t, err)
	_, _, err = TitleID("county:-1").Parse()
	assert.Error(t, err)
}

func TestCharacterID_RoundTrip(t *testing.T) {
	id := MakeCharacterID(7)
	assert.Equal(t, CharacterID("character:7"), id)

	index, err := id.Index()
	require.NoError(t, err)
	assert.Equal(t, 7, index)

	_, err = CharacterID("county:7").Index()
	assert.Error(t, err)
	_, err = CharacterID("character:x").Index()
	assert.Error(t, err)
}
