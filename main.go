//go:build !(js && wasm)

package main

import (
	"fmt"
	"os"

	"github.com/voxelsplace/blockymesh/blockymesh"
	"github.com/voxelsplace/blockymesh/utils"
	"github.com/voxelsplace/blockymesh/voxelbuffer"
)

func usage() {
	fmt.Println("Usage: blockymesh <command> [args]")
	fmt.Println("Commands:")
	fmt.Println("  meshtoglb catalog.yaml chunk.chunk output.glb [lod]         (mesh a chunk file against a catalog, write a .glb)")
	fmt.Println("  gennoise sx sy sz depth maxID <percentage> <amount> <output_dir>             (generate N random .chunk files with fixed fill %)")
	fmt.Println("  gennoise sx sy sz depth maxID <percentageMin> <percentageMax> <amount> <output_dir>  (per-file random fill in [min,max])")
	fmt.Println("  cacheinfo cache.db                                           (report how many meshes a result cache holds)")
	fmt.Println("  serve catalog.yaml chunk_dir cache.db addr                   (serve chunk meshes over websocket)")
}

func parseDepth(s string) (voxelbuffer.Depth, error) {
	var d int
	if _, err := fmt.Sscan(s, &d); err != nil {
		return 0, err
	}
	if d != 8 && d != 16 {
		return 0, fmt.Errorf("depth must be 8 or 16, got %d", d)
	}
	return voxelbuffer.Depth(d), nil
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "meshtoglb":
		if len(os.Args) != 5 && len(os.Args) != 6 {
			usage()
			os.Exit(1)
		}
		opts := blockymesh.Options{}
		if len(os.Args) == 6 {
			var lod int
			if _, err := fmt.Sscan(os.Args[5], &lod); err != nil {
				fmt.Println("Error:", err)
				os.Exit(1)
			}
			opts.LODIndex = uint8(lod)
		}
		if err := utils.RunChunkToGLB(os.Args[2], os.Args[3], os.Args[4], opts); err != nil {
			fmt.Println("Error:", err)
			os.Exit(1)
		}
	case "gennoise":
		// Two forms:
		// 1) gennoise sx sy sz depth maxID <percentage> <amount> <output_dir>
		// 2) gennoise sx sy sz depth maxID <percentageMin> <percentageMax> <amount> <output_dir>
		var sx, sy, sz, maxID int
		var depthArg string
		if len(os.Args) < 10 {
			usage()
			os.Exit(1)
		}
		if _, err := fmt.Sscan(os.Args[2], &sx); err != nil {
			fmt.Println("Error:", err)
			os.Exit(1)
		}
		if _, err := fmt.Sscan(os.Args[3], &sy); err != nil {
			fmt.Println("Error:", err)
			os.Exit(1)
		}
		if _, err := fmt.Sscan(os.Args[4], &sz); err != nil {
			fmt.Println("Error:", err)
			os.Exit(1)
		}
		depthArg = os.Args[5]
		depth, err := parseDepth(depthArg)
		if err != nil {
			fmt.Println("Error:", err)
			os.Exit(1)
		}
		if _, err := fmt.Sscan(os.Args[6], &maxID); err != nil {
			fmt.Println("Error:", err)
			os.Exit(1)
		}

		if len(os.Args) == 10 {
			var perc float64
			var amt int
			if _, err := fmt.Sscan(os.Args[7], &perc); err != nil {
				fmt.Println("Error:", err)
				os.Exit(1)
			}
			if _, err := fmt.Sscan(os.Args[8], &amt); err != nil {
				fmt.Println("Error:", err)
				os.Exit(1)
			}
			if err := utils.RunGenerateNoiseChunks(sx, sy, sz, depth, uint32(maxID), perc, perc, amt, os.Args[9]); err != nil {
				fmt.Println("Error:", err)
				os.Exit(1)
			}
		} else if len(os.Args) == 11 {
			var minP, maxP float64
			var amt int
			if _, err := fmt.Sscan(os.Args[7], &minP); err != nil {
				fmt.Println("Error:", err)
				os.Exit(1)
			}
			if _, err := fmt.Sscan(os.Args[8], &maxP); err != nil {
				fmt.Println("Error:", err)
				os.Exit(1)
			}
			if _, err := fmt.Sscan(os.Args[9], &amt); err != nil {
				fmt.Println("Error:", err)
				os.Exit(1)
			}
			if err := utils.RunGenerateNoiseChunks(sx, sy, sz, depth, uint32(maxID), minP, maxP, amt, os.Args[10]); err != nil {
				fmt.Println("Error:", err)
				os.Exit(1)
			}
		} else {
			usage()
			os.Exit(1)
		}
	case "cacheinfo":
		if len(os.Args) != 3 {
			usage()
			os.Exit(1)
		}
		if err := utils.RunCacheInfo(os.Args[2]); err != nil {
			fmt.Println("Error:", err)
			os.Exit(1)
		}
	case "serve":
		if len(os.Args) != 6 {
			usage()
			os.Exit(1)
		}
		if err := utils.RunServe(os.Args[2], os.Args[3], os.Args[4], os.Args[5]); err != nil {
			fmt.Println("Error:", err)
			os.Exit(1)
		}
		return
	default:
		usage()
		os.Exit(1)
	}

	fmt.Println("Operation completed!")
}
