package mp4

import "github.com/Sorrow446/go-mp4tag"

// genreNames spells the numeric iTunes genres the way ID3v1 names them.
var genreNames = map[mp4tag.Genre]string{
	mp4tag.GenreBlues:            "Blues",
	mp4tag.GenreClassicRock:      "Classic Rock",
	mp4tag.GenreCountry:          "Country",
	mp4tag.GenreDance:            "Dance",
	mp4tag.GenreDisco:            "Disco",
	mp4tag.GenreFunk:             "Funk",
	mp4tag.GenreGrunge:           "Grunge",
	mp4tag.GenreHipHop:           "Hip-Hop",
	mp4tag.GenreJazz:             "Jazz",
	mp4tag.GenreMetal:            "Metal",
	mp4tag.GenreNewAge:           "New Age",
	mp4tag.GenreOldies:           "Oldies",
	mp4tag.GenreOther:            "Other",
	mp4tag.GenrePop:              "Pop",
	mp4tag.GenreRhythmAndBlues:   "R&B",
	mp4tag.GenreRap:              "Rap",
	mp4tag.GenreReggae:           "Reggae",
	mp4tag.GenreRock:             "Rock",
	mp4tag.GenreTechno:           "Techno",
	mp4tag.GenreIndustrial:       "Industrial",
	mp4tag.GenreAlternative:      "Alternative",
	mp4tag.GenreSka:              "Ska",
	mp4tag.GenreDeathMetal:       "Death Metal",
	mp4tag.GenrePranks:           "Pranks",
	mp4tag.GenreSoundtrack:       "Soundtrack",
	mp4tag.GenreEurotechno:       "Euro-Techno",
	mp4tag.GenreAmbient:          "Ambient",
	mp4tag.GenreTripHop:          "Trip-Hop",
	mp4tag.GenreVocal:            "Vocal",
	mp4tag.GenreJassAndFunk:      "Jazz+Funk",
	mp4tag.GenreFusion:           "Fusion",
	mp4tag.GenreTrance:           "Trance",
	mp4tag.GenreClassical:        "Classical",
	mp4tag.GenreInstrumental:     "Instrumental",
	mp4tag.GenreAcid:             "Acid",
	mp4tag.GenreHouse:            "House",
	mp4tag.GenreGame:             "Game",
	mp4tag.GenreSoundClip:        "Sound Clip",
	mp4tag.GenreGospel:           "Gospel",
	mp4tag.GenreNoise:            "Noise",
	mp4tag.GenreAlternativeRock:  "AlternRock",
	mp4tag.GenreBass:             "Bass",
	mp4tag.GenreSoul:             "Soul",
	mp4tag.GenrePunk:             "Punk",
	mp4tag.GenreSpace:            "Space",
	mp4tag.GenreMeditative:       "Meditative",
	mp4tag.GenreInstrumentalPop:  "Instrumental Pop",
	mp4tag.GenreInstrumentalRock: "Instrumental Rock",
	mp4tag.GenreEthnic:           "Ethnic",
	mp4tag.GenreGothic:           "Gothic",
	mp4tag.GenreDarkwave:         "Darkwave",
	mp4tag.GenreTechnoindustrial: "Techno-Industrial",
	mp4tag.GenreElectronic:       "Electronic",
	mp4tag.GenrePopFolk:          "Pop-Folk",
	mp4tag.GenreEurodance:        "Eurodance",
	mp4tag.GenreSouthernRock:     "Southern Rock",
	mp4tag.GenreComedy:           "Comedy",
	mp4tag.GenreCull:             "Cult",
	mp4tag.GenreGangsta:          "Gangsta",
	mp4tag.GenreTop40:            "Top 40",
	mp4tag.GenreChristianRap:     "Christian Rap",
	mp4tag.GenrePopSlashFunk:     "Pop/Funk",
	mp4tag.GenreJungleMusic:      "Jungle",
	mp4tag.GenreNativeUS:         "Native American",
	mp4tag.GenreCabaret:          "Cabaret",
	mp4tag.GenreNewWave:          "New Wave",
	mp4tag.GenrePsychedelic:      "Psychedelic",
	mp4tag.GenreRave:             "Rave",
	mp4tag.GenreShowtunes:        "Showtunes",
	mp4tag.GenreTrailer:          "Trailer",
	mp4tag.GenreLofi:             "Lo-Fi",
	mp4tag.GenreTribal:           "Tribal",
	mp4tag.GenreAcidPunk:         "Acid Punk",
	mp4tag.GenreAcidJazz:         "Acid Jazz",
	mp4tag.GenrePolka:            "Polka",
	mp4tag.GenreRetro:            "Retro",
	mp4tag.GenreMusical:          "Musical",
	mp4tag.GenreRockNRoll:        "Rock & Roll",
	mp4tag.GenreHardRock:         "Hard Rock",
}

