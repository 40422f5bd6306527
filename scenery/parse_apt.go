// scenery/parse_apt.go
// Copyright(c) 2024-2026 scenerymgr contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package scenery

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/samkit/scenerymgr/log"
	"github.com/samkit/scenerymgr/math"
)

// ParseAptDat scans an airport's apt.dat for "1300" stand-location rows
// and a "1302 icao_code" row, appending discovered Stands to sc and
// setting sc.ICAO. Malformed 1300 rows are skipped individually rather
// than aborting the file.
func ParseAptDat(r io.Reader, sc *Scenery, lg *log.Logger) error {
	sca := bufio.NewScanner(r)
	sca.Buffer(make([]byte, 0, 4096), 1<<20)
	for sca.Scan() {
		line := strings.TrimRight(sca.Text(), "\r")

		if rest, ok := strings.CutPrefix(line, "1302 icao_code "); ok {
			sc.ICAO = strings.TrimSpace(rest)
			continue
		}

		if !strings.HasPrefix(line, "1300 ") {
			continue
		}
		fields := strings.Fields(line[5:])
		if len(fields) < 3 {
			continue
		}
		lat, err1 := strconv.ParseFloat(fields[0], 32)
		lon, err2 := strconv.ParseFloat(fields[1], 32)
		hdgt, err3 := strconv.ParseFloat(fields[2], 32)
		if err1 != nil || err2 != nil || err3 != nil {
			lg.Warn("malformed 1300 stand row, skipped", "line", line)
			continue
		}
		// the stand id is whatever free text follows the three leading
		// numeric fields and the two usage-type tokens the format reserves.
		id := ""
		if len(fields) > 5 {
			id = strings.Join(fields[5:], " ")
		}
		sc.Stands = append(sc.Stands, NewStand(id, float32(lat), float32(lon), math.RA(float32(hdgt))))
	}
	return sca.Err()
}
