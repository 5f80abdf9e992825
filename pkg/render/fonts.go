package render

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/decker502/ghosthorror/internal/system"
)

// HorrorFamilies 按优先级排列的恐怖风格字体族
var HorrorFamilies = []string{
	"Creepster",
	"Nosifer",
	"Butcherman",
	"Eater",
	"Metal Mania",
	"Creepy",
	"Impact",
}

// DefaultFontDirs 系统字体目录
func DefaultFontDirs() []string {
	dirs := []string{"/usr/share/fonts", "/usr/local/share/fonts"}
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs,
			filepath.Join(home, ".local", "share", "fonts"),
			filepath.Join(home, ".fonts"),
		)
	}
	return dirs
}

func fontKey(name string) string {
	return strings.ToLower(strings.NewReplacer(" ", "", "-", "", "_", "").Replace(name))
}

// FindHorrorFont 在字体目录中查找恐怖风格字体文件
// 按 HorrorFamilies 的顺序返回第一个文件名包含族名的 .ttf/.otf
func FindHorrorFont(dirs []string) (string, bool) {
	found := make(map[string]string)
	for _, dir := range dirs {
		_ = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				if d != nil && d.IsDir() {
					return fs.SkipDir
				}
				return nil
			}
			if d.IsDir() {
				return nil
			}
			ext := strings.ToLower(filepath.Ext(path))
			if ext != ".ttf" && ext != ".otf" {
				return nil
			}
			base := fontKey(strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)))
			for _, family := range HorrorFamilies {
				key := fontKey(family)
				if _, ok := found[key]; !ok && strings.HasPrefix(base, key) {
					found[key] = path
				}
			}
			return nil
		})
	}

	for _, family := range HorrorFamilies {
		if path, ok := found[fontKey(family)]; ok {
			return path, true
		}
	}
	return "", false
}

type faceKey struct {
	horror bool
	size   float64
}

// FontManager 按字号提供字体，带缓存
//
// 恐怖字体来源：配置的字体文件 → 系统字体目录 → 内置 Go Bold。
// 普通字体固定为内置 Go Regular。
type FontManager struct {
	horror  *text.GoTextFaceSource
	regular *text.GoTextFaceSource
	faces   map[faceKey]*text.GoTextFace
	log     *log.Logger
}

// NewFontManager 创建字体管理器
//
// 参数：
//   - customPath: 用户配置的字体文件，为空时在 dirs 中查找
//   - dirs: 字体搜索目录，为 nil 时使用 DefaultFontDirs
func NewFontManager(customPath string, dirs []string) (*FontManager, error) {
	fm := &FontManager{
		faces: make(map[faceKey]*text.GoTextFace),
		log:   system.Tagged("Fonts"),
	}

	regular, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return nil, fmt.Errorf("failed to load fallback font: %w", err)
	}
	fm.regular = regular

	if customPath != "" {
		if src, err := loadFaceSource(customPath); err == nil {
			fm.horror = src
			fm.log.Info("using configured font", "path", customPath)
		} else {
			fm.log.Warn("configured font unusable", "path", customPath, "err", err)
		}
	}

	if fm.horror == nil {
		if dirs == nil {
			dirs = DefaultFontDirs()
		}
		if path, ok := FindHorrorFont(dirs); ok {
			if src, err := loadFaceSource(path); err == nil {
				fm.horror = src
				fm.log.Info("using horror font", "path", path)
			} else {
				fm.log.Warn("horror font unusable", "path", path, "err", err)
			}
		}
	}

	if fm.horror == nil {
		src, err := text.NewGoTextFaceSource(bytes.NewReader(gobold.TTF))
		if err != nil {
			return nil, fmt.Errorf("failed to load fallback font: %w", err)
		}
		fm.horror = src
		fm.log.Debug("no horror font found, falling back to Go Bold")
	}

	return fm, nil
}

func loadFaceSource(path string) (*text.GoTextFaceSource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read font file %s: %w", path, err)
	}
	src, err := text.NewGoTextFaceSource(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to create font source for %s: %w", path, err)
	}
	return src, nil
}

// Face 返回指定样式的字体（按字号缓存）
func (fm *FontManager) Face(style TextStyle) *text.GoTextFace {
	size := style.Size
	if size < 1 {
		size = 1
	}
	key := faceKey{horror: style.Horror, size: size}
	if face, ok := fm.faces[key]; ok {
		return face
	}

	src := fm.regular
	if style.Horror {
		src = fm.horror
	}
	face := &text.GoTextFace{Source: src, Size: size}
	fm.faces[key] = face
	return face
}
