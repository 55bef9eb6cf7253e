// Package server exposes the viewer to the browser. A fiber app serves the
// single-page UI, JSON control endpoints feed the panel, and a websocket
// hub pushes rendered frames back. The server owns no rendering logic; it
// is the transport between the browser and the reconciler.
package server

import (
	_ "embed"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"

	"hdfview/internal/models"
	"hdfview/pkg/config"
	"hdfview/pkg/export"
	"hdfview/pkg/hdf"
	"hdfview/pkg/reconcile"
	"hdfview/pkg/render"
)

//go:embed index.html
var indexPage []byte

// Server wires the panel, the hub, and the reconciler behind HTTP routes.
type Server struct {
	app         *fiber.App
	panel       *Panel
	hub         *Hub
	reader      hdf.Reader
	rec         *reconcile.Reconciler
	cfg         *config.Config
	sessionPath string
}

// New builds the server and its routes. The reconciler is constructed here
// but not started; the caller runs it alongside the listener.
func New(reader hdf.Reader, cfg *config.Config) *Server {
	zoom := 2
	if len(cfg.Viewer.ZoomFactors) > 0 {
		zoom = cfg.Viewer.ZoomFactors[0]
	}
	s := &Server{
		panel:       NewPanel(cfg.Viewer.Colormap, cfg.Viewer.Marker, zoom),
		hub:         NewHub(),
		reader:      reader,
		cfg:         cfg,
		sessionPath: config.DefaultSessionPath(),
	}
	s.rec = reconcile.New(reader, s.panel, s.hub, cfg.UpdateInterval())

	app := fiber.New(fiber.Config{
		AppName:               "hdfview",
		DisableStartupMessage: true,
	})
	app.Use(logger.New())
	app.Use(cors.New())

	app.Get("/", func(c *fiber.Ctx) error {
		c.Set("Content-Type", "text/html")
		return c.Send(indexPage)
	})

	api := app.Group("/api")
	api.Get("/meta", s.handleMeta)
	api.Get("/tree", s.handleTree)
	api.Get("/dialog/list", s.handleDialogList)
	api.Post("/dialog/mkdir", s.handleMkdir)
	api.Post("/pick", s.handlePick)
	api.Post("/close", s.handleClose)
	api.Post("/select", s.handleSelect)
	api.Post("/controls", s.handleControls)
	api.Post("/click", s.handleClick)
	api.Post("/save/image", s.handleSaveImage)
	api.Post("/save/data", s.handleSaveData)

	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})
	app.Get("/ws", websocket.New(s.hub.Handle))

	s.app = app
	return s
}

// Reconciler exposes the display loop so the binary can run it.
func (s *Server) Reconciler() *reconcile.Reconciler { return s.rec }

// Serve runs the app on an already bound listener.
func (s *Server) Serve(ln net.Listener) error {
	return s.app.Listener(ln)
}

// Listen binds the port, returning an error when it is already in use. The
// bind is separate from Serve so the binary can fail before the display
// loop starts.
func Listen(port int) (net.Listener, error) {
	return net.Listen("tcp", fmt.Sprintf(":%d", port))
}

// handleMeta reports the static control vocabulary.
func (s *Server) handleMeta(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"colormaps":    render.Colormaps(),
		"markers":      render.Markers(),
		"zoom_factors": s.cfg.Viewer.ZoomFactors,
		"defaults":     s.panel.Snapshot(),
	})
}

// handleTree returns the hierarchy of a picked file.
func (s *Server) handleTree(c *fiber.Ctx) error {
	file := c.Query("file")
	if file == "" {
		file = s.panel.Snapshot().FilePath
	}
	if file == "" {
		return c.JSON([]models.TreeNode{})
	}
	tree, err := s.reader.Tree(file)
	if err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).
			JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(tree)
}

// handleDialogList lists a directory for the open/save dialogs. The open
// dialog hides files outside the data-file extension allow-list.
func (s *Server) handleDialogList(c *fiber.Ctx) error {
	dir := c.Query("dir")
	if dir == "" || !dirExists(dir) {
		if sess, err := config.LoadSession(s.sessionPath); err == nil &&
			sess.LastFolder != "" && dirExists(sess.LastFolder) {
			dir = sess.LastFolder
		} else if home, err := os.UserHomeDir(); err == nil {
			dir = home
		} else {
			dir = "/"
		}
	}
	entries, err := listDir(dir, c.Query("mode") != "save")
	if err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).
			JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"dir": dir, "entries": entries})
}

// handleMkdir creates a folder inside the save dialog's directory.
func (s *Server) handleMkdir(c *fiber.Ctx) error {
	var req struct {
		Dir  string `json:"dir"`
		Name string `json:"name"`
	}
	if err := c.BodyParser(&req); err != nil || req.Dir == "" || req.Name == "" {
		return c.SendStatus(fiber.StatusBadRequest)
	}
	path := filepath.Join(req.Dir, req.Name)
	if err := os.Mkdir(path, 0o755); err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).
			JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"path": path})
}

// handlePick opens a data file: records it on the panel and persists its
// folder as the session's last-visited location. A null path means the
// dialog was canceled and the pick is silently dropped.
func (s *Server) handlePick(c *fiber.Ctx) error {
	var req struct {
		Path *string `json:"path"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.SendStatus(fiber.StatusBadRequest)
	}
	if req.Path == nil || *req.Path == "" {
		return c.JSON(fiber.Map{"picked": false})
	}
	path := *req.Path
	if !IsDataFile(path) {
		s.hub.Notify("Please select a file with extension: " +
			".hdf, .h5, .nxs, or .hdf5!")
		return c.JSON(fiber.Map{"picked": false})
	}
	s.panel.Select(path, "")
	s.saveLastFolder(filepath.Dir(path))
	return c.JSON(fiber.Map{"picked": true})
}

// handleClose unloads the picked file. Dropping the selection makes the
// display loop blank the view on its next pass.
func (s *Server) handleClose(c *fiber.Ctx) error {
	s.panel.Clear()
	return c.SendStatus(fiber.StatusNoContent)
}

// handleSelect points the view at a key of the picked file.
func (s *Server) handleSelect(c *fiber.Ctx) error {
	var req struct {
		Key string `json:"key"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.SendStatus(fiber.StatusBadRequest)
	}
	st := s.panel.Snapshot()
	s.panel.Select(st.FilePath, req.Key)
	return c.SendStatus(fiber.StatusNoContent)
}

// handleControls merges a partial control update.
func (s *Server) handleControls(c *fiber.Ctx) error {
	var u controlUpdate
	if err := c.BodyParser(&u); err != nil {
		return c.SendStatus(fiber.StatusBadRequest)
	}
	s.panel.Apply(u)
	return c.SendStatus(fiber.StatusNoContent)
}

// handleClick forwards an image click for the zoom/profile overlays.
func (s *Server) handleClick(c *fiber.Ctx) error {
	var req struct {
		X int `json:"x"`
		Y int `json:"y"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.SendStatus(fiber.StatusBadRequest)
	}
	s.rec.HandleClick(req.X, req.Y)
	return c.SendStatus(fiber.StatusNoContent)
}

// handleSaveImage writes the displayed slice to disk as an image, or as
// CSV when the path carries a .csv extension.
func (s *Server) handleSaveImage(c *fiber.Ctx) error {
	var req struct {
		Path *string `json:"path"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.SendStatus(fiber.StatusBadRequest)
	}
	img := s.rec.Image()
	if req.Path == nil || *req.Path == "" || img == nil {
		return c.SendStatus(fiber.StatusNoContent)
	}
	path := *req.Path
	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".tif" && ext != ".jpg" && ext != ".png" && ext != ".csv" {
		s.hub.Notify("Please use .tif, .jpg, .png, or .csv as file extension!")
		return c.SendStatus(fiber.StatusNoContent)
	}
	exists := fileExists(path)
	var err error
	if ext == ".csv" {
		err = export.SaveCSV(path, img)
	} else {
		err = export.SaveImage(path, img)
	}
	s.reportSave(path, exists, err)
	s.saveLastFolder(filepath.Dir(path))
	return c.SendStatus(fiber.StatusNoContent)
}

// handleSaveData writes the displayed 1D/2D data as CSV. A missing
// extension defaults to .csv.
func (s *Server) handleSaveData(c *fiber.Ctx) error {
	var req struct {
		Path *string `json:"path"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.SendStatus(fiber.StatusBadRequest)
	}
	vec, grid := s.rec.Series()
	if req.Path == nil || *req.Path == "" || (vec == nil && grid == nil) {
		return c.SendStatus(fiber.StatusNoContent)
	}
	path := *req.Path
	if filepath.Ext(path) == "" {
		path += ".csv"
	}
	if strings.ToLower(filepath.Ext(path)) != ".csv" {
		s.hub.Notify("Please use .csv as file extension!")
		return c.SendStatus(fiber.StatusNoContent)
	}
	exists := fileExists(path)
	var err error
	if grid != nil {
		err = export.SaveCSV(path, grid)
	} else {
		err = export.SaveCSVVector(path, vec)
	}
	s.reportSave(path, exists, err)
	s.saveLastFolder(filepath.Dir(path))
	return c.SendStatus(fiber.StatusNoContent)
}

// reportSave surfaces the save outcome as a notice.
func (s *Server) reportSave(path string, existed bool, err error) {
	switch {
	case err != nil:
		s.hub.Notify(err.Error())
	case existed:
		s.hub.Notify(fmt.Sprintf("File %s is overwritten", path))
	default:
		s.hub.Notify(fmt.Sprintf("File is saved at: %s", path))
	}
}

// saveLastFolder persists the session's last-visited directory.
func (s *Server) saveLastFolder(dir string) {
	if dir == "" || dir == "." {
		return
	}
	if err := config.SaveSession(&config.Session{LastFolder: dir}, s.sessionPath); err != nil {
		s.hub.Notify(fmt.Sprintf("Can't save session: %v", err))
	}
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
